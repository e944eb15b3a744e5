package main

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"cropbox/crop"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

type Steps = []Step

// Step is one line of a gesture script. Line is its 1-based line in the
// script source, 0 for steps built in code.
type Step struct {
	Line    int `json:"-"`
	Media   *MediaStep
	Crop    *CropStep
	Pointer *PointerStep
	Key     *KeyStep
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var step struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &step); err != nil {
		return fmt.Errorf("failed to unmarshal step: %w", err)
	}

	switch step.Type {
	case "media":
		var media MediaStep
		if err := json.Unmarshal(data, &media); err != nil {
			return fmt.Errorf("failed to unmarshal media step: %w", err)
		}
		s.Media = &media
	case "crop":
		var c CropStep
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("failed to unmarshal crop step: %w", err)
		}
		s.Crop = &c
	case "down", "move", "up", "cancel", "leave":
		var pointer PointerStep
		if err := json.Unmarshal(data, &pointer); err != nil {
			return fmt.Errorf("failed to unmarshal %s step: %w", step.Type, err)
		}
		pointer.Type = pointerTypes[step.Type]
		s.Pointer = &pointer
	case "key":
		var key KeyStep
		if err := json.Unmarshal(data, &key); err != nil {
			return fmt.Errorf("failed to unmarshal key step: %w", err)
		}
		s.Key = &key
	default:
		return fmt.Errorf("unknown step %q", step.Type)
	}
	return nil
}

var pointerTypes = map[string]crop.EventType{
	"down":   crop.EventPress,
	"move":   crop.EventMove,
	"up":     crop.EventRelease,
	"cancel": crop.EventCancel,
	"leave":  crop.EventLeave,
}

// MediaStep lays out the displayed media on the page.
type MediaStep struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// CropStep sets the crop the way a host would before any gesture.
type CropStep struct {
	Crop crop.Rect `json:"crop"`
}

type PointerStep struct {
	Type   crop.EventType `json:"-"`
	Target string         `json:"target"`
	Ord    crop.Ord       `json:"ord"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Touch  bool           `json:"touch"`
}

func (p PointerStep) event() (crop.Event, error) {
	ev := crop.Event{Type: p.Type, Ord: p.Ord}
	switch p.Target {
	case "":
	case "media":
		ev.Target = crop.TargetMedia
	case "selection":
		ev.Target = crop.TargetSelection
	default:
		return crop.Event{}, fmt.Errorf("unknown target %q", p.Target)
	}

	if p.Touch {
		ev.Touches = []crop.Point{{X: p.X, Y: p.Y}}
	} else {
		ev.PageX, ev.PageY = p.X, p.Y
	}
	return ev, nil
}

type KeyStep struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift"`
}

// Script is a named sequence of steps replayed against one Cropper.
type Script struct {
	Name  string
	Steps Steps
}

// Record is one callback emitted while replaying a script.
// Step is the script line that emitted the record.
type Record struct {
	Script  string     `json:"script"`
	Step    int        `json:"step"`
	Event   string     `json:"event"`
	Pixel   *crop.Rect `json:"pixel,omitempty"`
	Percent *crop.Rect `json:"percent,omitempty"`
}

type ScriptRunner struct {
	Config   crop.Config
	Parallel int
}

// Run replays every script on its own Cropper and returns the records in
// script order.
func (r ScriptRunner) Run(ctx context.Context, scripts []Script) ([][]Record, error) {
	if len(scripts) == 0 {
		log.Ctx(ctx).Warn().Msg("no scripts to replay")
		return nil, nil
	}

	parallel := r.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	pooler := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(parallel)

	results := make([][]Record, len(scripts))
	for i, script := range scripts {
		i, script := i, script
		pooler.Go(func(ctx context.Context) error {
			records, err := r.replay(ctx, script)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).
					Str("script", script.Name).
					Msg("failed to replay script")
				return err
			}
			results[i] = records
			return nil
		})
	}

	if err := pooler.Wait(); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Msg("finished with errors")
		return nil, err
	}

	return results, nil
}

func (r ScriptRunner) replay(ctx context.Context, script Script) ([]Record, error) {
	logger := log.Ctx(ctx).With().Str("script", script.Name).Logger()
	logger.Info().Int("steps", len(script.Steps)).Msg("replaying")

	var (
		records []Record
		step    int
	)
	record := func(event string) func(pixel, percent crop.Rect) {
		return func(pixel, percent crop.Rect) {
			records = append(records, Record{
				Script:  script.Name,
				Step:    step,
				Event:   event,
				Pixel:   &pixel,
				Percent: &percent,
			})
		}
	}

	cfg := r.Config
	cfg.Logger = &logger
	cfg.OnChange = record("change")
	cfg.OnComplete = record("complete")
	cfg.OnDragStart = func(crop.Event) {
		records = append(records, Record{Script: script.Name, Step: step, Event: "drag_start"})
	}
	cfg.OnDragEnd = func(crop.Event) {
		records = append(records, Record{Script: script.Name, Step: step, Event: "drag_end"})
	}

	layout := &crop.StaticLayout{}
	doc := crop.NewDocument()
	cropper := crop.New(cfg, layout, doc)
	defer cropper.Close()

	for i, s := range script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step = s.Line
		if step == 0 {
			step = i + 1
		}

		switch {
		case s.Media != nil:
			layout.Size = crop.Media{Width: s.Media.Width, Height: s.Media.Height}
			layout.Offset = crop.Point{X: s.Media.Left, Y: s.Media.Top}
			cropper.MediaLoaded()
		case s.Crop != nil:
			cropper.SetCrop(s.Crop.Crop)
		case s.Pointer != nil:
			ev, err := s.Pointer.event()
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", step, err)
			}
			if ev.Type == crop.EventPress {
				if !cropper.PointerDown(ev) {
					logger.Debug().Int("step", step).Msg("press did not start a gesture")
				}
				continue
			}
			doc.Dispatch(ev)
		case s.Key != nil:
			cropper.KeyDown(crop.KeyEvent{Key: s.Key.Key, Shift: s.Key.Shift})
		}
	}

	logger.Info().Int("records", len(records)).Stringer("crop", cropper.Crop()).Msg("replayed")
	return records, nil
}
