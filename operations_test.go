package main

import (
	"context"
	"math"
	"strings"
	"testing"

	"cropbox/crop"
)

const translateScript = `{"type":"media","width":200,"height":100,"left":10,"top":20}
{"type":"crop","crop":{"x":10,"y":10,"width":50,"height":50,"unit":"px"}}
{"type":"down","target":"selection","x":50,"y":50}
{"type":"move","x":60,"y":55}
{"type":"up","x":60,"y":55}
{"type":"key","key":"ArrowRight","shift":true}
`

const drawScript = `{"type":"media","width":200,"height":200,"left":10,"top":20}
{"type":"down","target":"media","x":60,"y":70,"touch":true}
{"type":"move","x":110,"y":100,"touch":true}
{"type":"cancel","touch":true}
`

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*max(1, math.Abs(a), math.Abs(b))
}

func checkRecord(t *testing.T, got Record, step int, event string, pixel *crop.Rect) {
	t.Helper()
	if got.Step != step || got.Event != event {
		t.Fatalf("got %s at step %d, want %s at step %d", got.Event, got.Step, event, step)
	}
	if pixel == nil {
		if got.Pixel != nil || got.Percent != nil {
			t.Errorf("%s record carries a crop", event)
		}
		return
	}
	if got.Pixel == nil || got.Percent == nil {
		t.Fatalf("%s record carries no crop", event)
	}
	p := *got.Pixel
	if !approxEqual(p.X, pixel.X) || !approxEqual(p.Y, pixel.Y) ||
		!approxEqual(p.Width, pixel.Width) || !approxEqual(p.Height, pixel.Height) {
		t.Errorf("step %d %s: got %v, want %v", step, event, p, *pixel)
	}
	if got.Percent.Unit != crop.UnitPercent {
		t.Errorf("percent record has unit %q", got.Percent.Unit)
	}
}

func mustScript(t *testing.T, name, text string) Script {
	t.Helper()
	script, err := readScript(name, strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	return script
}

func TestStepUnmarshal(t *testing.T) {
	script := mustScript(t, "translate", translateScript)
	if len(script.Steps) != 6 {
		t.Fatalf("got %d steps, want 6", len(script.Steps))
	}

	if m := script.Steps[0].Media; m == nil || m.Width != 200 || m.Left != 10 {
		t.Errorf("media step: %+v", script.Steps[0])
	}
	if c := script.Steps[1].Crop; c == nil || c.Crop.Unit != crop.UnitPixel || c.Crop.Width != 50 {
		t.Errorf("crop step: %+v", script.Steps[1])
	}
	if p := script.Steps[2].Pointer; p == nil || p.Type != crop.EventPress || p.Ord != crop.OrdMove {
		t.Errorf("down step: %+v", script.Steps[2])
	}
	if p := script.Steps[4].Pointer; p == nil || p.Type != crop.EventRelease {
		t.Errorf("up step: %+v", script.Steps[4])
	}
	if k := script.Steps[5].Key; k == nil || k.Key != crop.KeyArrowRight || !k.Shift {
		t.Errorf("key step: %+v", script.Steps[5])
	}
}

func TestStepUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown type", `{"type":"wheel"}`},
		{"bad ord", `{"type":"down","target":"selection","ord":"north"}`},
		{"bad json", `{"type":`},
		{"bad media", `{"type":"media","width":"wide"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readScript(tt.name, strings.NewReader(tt.line)); err == nil {
				t.Errorf("readScript(%s) succeeded", tt.line)
			}
		})
	}
}

func TestPointerStepEvent(t *testing.T) {
	ev, err := PointerStep{Type: crop.EventMove, Target: "selection", Ord: crop.OrdSE, X: 3, Y: 4, Touch: true}.event()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Target != crop.TargetSelection || ev.Ord != crop.OrdSE {
		t.Errorf("unexpected event %+v", ev)
	}
	if pos := crop.ClientPos(ev); pos != (crop.Point{X: 3, Y: 4}) {
		t.Errorf("touch position = %v", pos)
	}

	if _, err := (PointerStep{Target: "handle"}).event(); err == nil {
		t.Error("unknown target accepted")
	}
}

func TestScriptRunnerTranslate(t *testing.T) {
	runner := ScriptRunner{Parallel: 1}
	results, err := runner.Run(context.Background(), []Script{mustScript(t, "translate", translateScript)})
	if err != nil {
		t.Fatal(err)
	}

	records := results[0]
	if len(records) != 6 {
		t.Fatalf("got %d records: %+v", len(records), records)
	}
	moved := &crop.Rect{X: 20, Y: 15, Width: 50, Height: 50}
	nudged := &crop.Rect{X: 20 + crop.NudgeStepLarge, Y: 15, Width: 50, Height: 50}
	checkRecord(t, records[0], 4, "drag_start", nil)
	checkRecord(t, records[1], 4, "change", moved)
	checkRecord(t, records[2], 5, "drag_end", nil)
	checkRecord(t, records[3], 5, "complete", moved)
	checkRecord(t, records[4], 6, "change", nudged)
	checkRecord(t, records[5], 6, "complete", nudged)

	for _, r := range records {
		if r.Script != "translate" {
			t.Errorf("record from script %q", r.Script)
		}
	}
	if p := records[1].Percent; !approxEqual(p.X, 10) || !approxEqual(p.Width, 25) || !approxEqual(p.Height, 50) {
		t.Errorf("percent = %v", *p)
	}
}

func TestScriptRunnerDrawWithTouch(t *testing.T) {
	runner := ScriptRunner{}
	results, err := runner.Run(context.Background(), []Script{mustScript(t, "draw", drawScript)})
	if err != nil {
		t.Fatal(err)
	}

	records := results[0]
	if len(records) != 5 {
		t.Fatalf("got %d records: %+v", len(records), records)
	}
	drawn := &crop.Rect{X: 50, Y: 50, Width: 50, Height: 30}
	checkRecord(t, records[0], 2, "change", &crop.Rect{X: 50, Y: 50})
	checkRecord(t, records[1], 3, "drag_start", nil)
	checkRecord(t, records[2], 3, "change", drawn)
	checkRecord(t, records[3], 4, "drag_end", nil)
	checkRecord(t, records[4], 4, "complete", drawn)
}

func TestScriptRunnerConfig(t *testing.T) {
	runner := ScriptRunner{Config: crop.Config{Locked: true}}
	results, err := runner.Run(context.Background(), []Script{
		mustScript(t, "draw", drawScript),
		mustScript(t, "translate", translateScript),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(results[0]) != 0 {
		t.Errorf("locked draw emitted %+v", results[0])
	}
	// Keyboard nudges are not pointer gestures and still apply.
	if len(results[1]) != 2 || results[1][0].Event != "change" || results[1][1].Event != "complete" {
		t.Errorf("locked translate emitted %+v", results[1])
	}
}

func TestScriptRunnerKeepsOrder(t *testing.T) {
	var scripts []Script
	for i := 0; i < 16; i++ {
		name := "translate"
		text := translateScript
		if i%2 == 1 {
			name, text = "draw", drawScript
		}
		scripts = append(scripts, mustScript(t, name, text))
	}

	results, err := ScriptRunner{Parallel: 4}.Run(context.Background(), scripts)
	if err != nil {
		t.Fatal(err)
	}
	for i, records := range results {
		if len(records) == 0 {
			t.Fatalf("result %d is empty", i)
		}
		if want := scripts[i].Name; records[0].Script != want {
			t.Errorf("result %d belongs to %q, want %q", i, records[0].Script, want)
		}
	}
}

func TestScriptRunnerErrors(t *testing.T) {
	bad := Script{Name: "bad", Steps: Steps{{Pointer: &PointerStep{Type: crop.EventPress, Target: "frame"}}}}
	if _, err := (ScriptRunner{}).Run(context.Background(), []Script{bad}); err == nil {
		t.Error("unknown target replayed without error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (ScriptRunner{}).Run(ctx, []Script{mustScript(t, "translate", translateScript)}); err == nil {
		t.Error("cancelled replay succeeded")
	}

	results, err := ScriptRunner{}.Run(context.Background(), nil)
	if err != nil || results != nil {
		t.Errorf("empty run = %v, %v", results, err)
	}
}

func TestScriptRunnerRecordsSourceLines(t *testing.T) {
	text := "# nudge a crop\n\n" + translateScript
	script := mustScript(t, "commented", text)
	if got := script.Steps[0].Line; got != 3 {
		t.Fatalf("first step on line %d, want 3", got)
	}

	results, err := ScriptRunner{}.Run(context.Background(), []Script{script})
	if err != nil {
		t.Fatal(err)
	}

	records := results[0]
	if len(records) != 6 {
		t.Fatalf("got %d records: %+v", len(records), records)
	}
	// The move, release and key steps sit on lines 6, 7 and 8.
	wantLines := []int{6, 6, 7, 7, 8, 8}
	for i, r := range records {
		if r.Step != wantLines[i] {
			t.Errorf("record %d (%s) on line %d, want %d", i, r.Event, r.Step, wantLines[i])
		}
	}
}
