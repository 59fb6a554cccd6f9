package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli"
	"github.com/wren/goosesim/sim/audio"
	"github.com/wren/goosesim/sim/backend"
	"github.com/wren/goosesim/sim/backend/headless"
	"github.com/wren/goosesim/sim/backend/sdl2"
	"github.com/wren/goosesim/sim/backend/terminal"
	"github.com/wren/goosesim/sim/clock"
	"github.com/wren/goosesim/sim/design"
	"github.com/wren/goosesim/sim/harness"
	"github.com/wren/goosesim/sim/timing"
	"github.com/wren/goosesim/sim/video"
)

func main() {
	app := cli.NewApp()
	app.Name = "goosesim"
	app.Description = "Real-time harness for the goose-game hardware model"
	app.Usage = "goosesim [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, sdl2 or headless",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a display (same as --backend headless)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode",
			Value: 60,
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor for the SDL2 backend",
			Value: 1,
		},
		cli.StringFlag{
			Name:  "input-mode",
			Usage: "Input pin policy: pulse, level or dual",
			Value: "pulse",
		},
		cli.IntFlag{
			Name:  "pulse-width",
			Usage: "Input pulse width in simulated cycles (0 = default)",
		},
		cli.BoolFlag{
			Name:  "active-low",
			Usage: "Drive the input bus active-low (idle high)",
		},
		cli.StringFlag{
			Name:  "audio",
			Usage: "Audio mode: off, sim or callback",
			Value: "sim",
		},
		cli.StringFlag{
			Name:  "export-audio",
			Usage: "Render the sound catalogue to WAV files in this directory and exit",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory for frame snapshots",
			Value: "snapshots",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running harness", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if dir := c.String("export-audio"); dir != "" {
		return exportAudio(dir)
	}

	cfg := harness.Config{
		Geometry:   video.VGA640x480,
		PulseWidth: c.Int("pulse-width"),
		ActiveLow:  c.Bool("active-low"),
	}

	switch c.String("input-mode") {
	case "pulse":
		cfg.InputMode = harness.InputPulse
	case "level":
		cfg.InputMode = harness.InputLevel
	case "dual":
		cfg.InputMode = harness.InputDual
	default:
		return fmt.Errorf("unknown input mode %q", c.String("input-mode"))
	}

	switch c.String("audio") {
	case "off":
		cfg.AudioMode = harness.AudioOff
	case "sim":
		cfg.AudioMode = harness.AudioSim
	case "callback":
		cfg.AudioMode = harness.AudioCallback
	default:
		return fmt.Errorf("unknown audio mode %q", c.String("audio"))
	}

	h, err := harness.New(design.NewGoose(), cfg)
	if err != nil {
		return err
	}

	backendName := c.String("backend")
	if c.Bool("headless") {
		backendName = "headless"
	}

	var b backend.Backend
	var lim timing.Limiter
	switch backendName {
	case "terminal":
		b = terminal.New()
		lim = timing.NewTickerLimiter(cfg.Geometry.RefreshHz())
	case "sdl2":
		b = sdl2.New()
		lim = timing.NewTickerLimiter(cfg.Geometry.RefreshHz())
	case "headless":
		b = headless.New(c.Int("frames"), headless.SnapshotConfig{
			Interval:  c.Int("snapshot-interval"),
			Directory: c.String("snapshot-dir"),
		})
		lim = timing.NewNoOpLimiter()
		if cfg.AudioMode != harness.AudioOff {
			cfg.AudioMode = harness.AudioOff
			h, err = harness.New(design.NewGoose(), cfg)
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown backend %q", backendName)
	}

	return h.Run(b, lim)
}

// exportAudio renders each catalogue sound from a freshly reset design and
// writes it as a mono 16-bit WAV at the derived sample rate.
func exportAudio(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, sound := range audio.Sounds {
		driver := clock.NewDriver(design.NewGoose())
		driver.Reset()
		driver.Warmup(10)

		gen, err := audio.NewGenerator(driver)
		if err != nil {
			return err
		}
		samples, err := gen.Render(sound)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, fmt.Sprintf("audio_%s.wav", sound.Name))
		if err := audio.WriteWAV(path, samples, audio.SampleRate); err != nil {
			return err
		}
		slog.Info("Rendered sound", "name", sound.Name, "samples", len(samples), "path", path)
	}
	return nil
}
