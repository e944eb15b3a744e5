package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"cropbox/crop"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run() error {
	// A missing .env is fine, env tags fall back to their defaults.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var args cliArgs
	cliCtx := kong.Parse(
		&args,
		kong.Name("cropbox"),
		kong.Description("Replay crop gestures and convert crop rectangles."),
		kong.UsageOnError(),
	)
	if err := cliCtx.Run(); err != nil {
		return err
	}

	return nil
}

func setupLogging(verbose bool) context.Context {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(level)
	zerolog.DefaultContextLogger = &log.Logger

	return log.Logger.WithContext(context.Background())
}

type replayCmd struct {
	Paths         []string `arg:"" optional:"" help:"Script files or directories of .jsonl scripts. Reads stdin when empty."`
	MinWidth      float64  `help:"Minimum crop width in pixels" env:"CROPBOX_MIN_WIDTH"`
	MinHeight     float64  `help:"Minimum crop height in pixels" env:"CROPBOX_MIN_HEIGHT"`
	MaxWidth      float64  `help:"Maximum crop width in pixels, 0 for the media width" env:"CROPBOX_MAX_WIDTH"`
	MaxHeight     float64  `help:"Maximum crop height in pixels, 0 for the media height" env:"CROPBOX_MAX_HEIGHT"`
	KeepSelection bool     `help:"Keep the selection when the media is clicked" env:"CROPBOX_KEEP_SELECTION"`
	Locked        bool     `help:"Block drawing, moving and resizing" env:"CROPBOX_LOCKED"`
	Disabled      bool     `help:"Ignore all input" env:"CROPBOX_DISABLED"`
	Parallel      int      `help:"Scripts replayed at once, 0 for one per CPU" env:"CROPBOX_PARALLEL" default:"0"`
	Verbose       bool     `help:"Enable verbose logging" env:"CROPBOX_VERBOSE" default:"false"`
}

func (cmd *replayCmd) Run() error {
	ctx := setupLogging(cmd.Verbose)
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	scripts, err := cmd.scripts()
	if err != nil {
		return err
	}

	runner := ScriptRunner{
		Config:   cmd.config(),
		Parallel: cmd.Parallel,
	}
	results, err := runner.Run(ctx, scripts)
	if err != nil {
		return err
	}

	for _, records := range results {
		printJSONL(records)
	}
	return nil
}

func (cmd *replayCmd) config() crop.Config {
	return crop.Config{
		Limits: crop.Limits{
			MinWidth:  cmd.MinWidth,
			MinHeight: cmd.MinHeight,
			MaxWidth:  cmd.MaxWidth,
			MaxHeight: cmd.MaxHeight,
		},
		Disabled:      cmd.Disabled,
		Locked:        cmd.Locked,
		KeepSelection: cmd.KeepSelection,
	}
}

func (cmd *replayCmd) scripts() ([]Script, error) {
	if len(cmd.Paths) == 0 {
		script, err := readScript("stdin", os.Stdin)
		if err != nil {
			return nil, err
		}
		return []Script{script}, nil
	}

	files, err := collectScripts(cmd.Paths)
	if err != nil {
		return nil, err
	}
	scripts := make([]Script, 0, len(files))
	for _, file := range files {
		script, err := loadScript(file)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

type convertCmd struct {
	Rect   string  `arg:"" help:"Rectangle as x,y,width,height"`
	Width  float64 `help:"Media width in pixels" required:""`
	Height float64 `help:"Media height in pixels" required:""`
	To     string  `help:"Target unit" enum:"px,%" default:"%"`
	Aspect float64 `help:"Aspect ratio carried on the rectangle"`
}

func (cmd *convertCmd) Run() error {
	r, err := parseRect(cmd.Rect)
	if err != nil {
		return err
	}
	r.Aspect = cmd.Aspect

	media := crop.Media{Width: cmd.Width, Height: cmd.Height}
	if crop.Unit(cmd.To) == crop.UnitPixel {
		r.Unit = crop.UnitPercent
		r = crop.ToPixel(r, media)
	} else {
		r.Unit = crop.UnitPixel
		r = crop.ToPercent(r, media)
	}

	printJSONL([]crop.Rect{r})
	return nil
}

// parseRect reads "x,y,width,height".
func parseRect(s string) (crop.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return crop.Rect{}, fmt.Errorf("rect %q: want x,y,width,height", s)
	}

	var values [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return crop.Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		values[i] = v
	}
	return crop.Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}

type cliArgs struct {
	Replay  replayCmd  `cmd:"" default:"withargs" help:"Replay gesture scripts and print the emitted crops"`
	Convert convertCmd `cmd:"" help:"Convert a rectangle between pixels and percent"`
}

func printJSONL[T any](data []T) {
	enc := json.NewEncoder(os.Stdout)
	for _, item := range data {
		if err := enc.Encode(item); err != nil {
			log.Error().Err(err).Msg("Failed to encode item to JSON")
			continue
		}
	}
}
