// Package harness orchestrates the real-time simulation: it advances the
// design clock against the raster scan, feeds synthesized input pulses,
// extracts pixels into the frame buffer, and bridges audio samples to the
// host device. One harness configuration replaces the zoo of near-duplicate
// drivers the hardware project grew: input policy and audio policy are
// parameters, not builds.
package harness

import (
	"fmt"
	"log/slog"

	"github.com/wren/goosesim/sim/audio"
	"github.com/wren/goosesim/sim/backend"
	"github.com/wren/goosesim/sim/clock"
	"github.com/wren/goosesim/sim/design"
	"github.com/wren/goosesim/sim/input"
	"github.com/wren/goosesim/sim/input/action"
	"github.com/wren/goosesim/sim/timing"
	"github.com/wren/goosesim/sim/video"
)

// InputMode selects the input-pin policy.
type InputMode int

const (
	// InputPulse stretches the jump press into a fixed-width pulse and
	// latches the secondary button as a halt toggle level.
	InputPulse InputMode = iota
	// InputLevel passes both held levels straight through every cycle.
	InputLevel
	// InputDual pulses both buttons (jump plus a reset pulse).
	InputDual
)

// AudioMode selects how audio reaches the host device.
type AudioMode int

const (
	// AudioOff runs video only.
	AudioOff AudioMode = iota
	// AudioSim taps samples out of the design as the raster scan clocks
	// it, through the ring buffer to the device callback.
	AudioSim
	// AudioCallback clocks the design from inside the device callback
	// itself, one forced sample per requested sample. Video is not
	// scanned in this mode: the callback owns the clock.
	AudioCallback
)

// Config parameterizes a harness.
type Config struct {
	Geometry     video.Geometry
	InputMode    InputMode
	AudioMode    AudioMode
	ActiveLow    bool // active-low input bus: idle high, assert low
	PulseWidth   int  // cycles; input.DefaultPulseWidth when zero
	RingCapacity int  // samples; audio.DefaultRingCapacity when zero
}

// Harness ties a design to a backend.
type Harness struct {
	cfg     Config
	driver  *clock.Driver
	scanner *video.Scanner
	synth   *input.Synthesizer
	manager *input.Manager
	frame   *video.FrameBuffer
	ring    *audio.Ring
	tap     *audio.Tap

	quit bool
}

// New wires up a harness around a design handle.
func New(d design.Design, cfg Config) (*Harness, error) {
	if cfg.Geometry == (video.Geometry{}) {
		cfg.Geometry = video.VGA640x480
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	if cfg.RingCapacity == 0 {
		cfg.RingCapacity = audio.DefaultRingCapacity
	}

	h := &Harness{
		cfg:    cfg,
		driver: clock.NewDriver(d),
		frame:  video.NewFrameBuffer(cfg.Geometry.VisibleW, cfg.Geometry.VisibleH),
	}

	h.synth = input.NewSynthesizer(cfg.ActiveLow)
	switch cfg.InputMode {
	case InputPulse:
		h.synth.Bind(action.ButtonJump, input.Line{Bit: 0, Mode: input.ModePulse, PulseWidth: cfg.PulseWidth})
		h.synth.Bind(action.ButtonSecondary, input.Line{Bit: 1, Mode: input.ModeToggle})
	case InputLevel:
		h.synth.Bind(action.ButtonJump, input.Line{Bit: 0, Mode: input.ModeLevel})
		h.synth.Bind(action.ButtonSecondary, input.Line{Bit: 1, Mode: input.ModeLevel})
	case InputDual:
		h.synth.Bind(action.ButtonJump, input.Line{Bit: 0, Mode: input.ModePulse, PulseWidth: cfg.PulseWidth})
		h.synth.Bind(action.ButtonSecondary, input.Line{Bit: 1, Mode: input.ModePulse, PulseWidth: cfg.PulseWidth})
	}
	h.manager = input.NewManager(h.synth)

	h.scanner = video.NewScanner(h.driver, cfg.Geometry)
	// Drive the bus before decrementing: the pin holds its level for the
	// cycle that just ran, and the countdown burns one cycle per cycle.
	h.scanner.OnCycle(func() {
		d.SetInputs(h.synth.BusValue())
		h.synth.Tick()
	})

	if cfg.AudioMode == AudioSim {
		h.ring = audio.NewRing(cfg.RingCapacity)
		h.tap = audio.NewTap(d, h.ring)
		if !h.tap.Available() {
			slog.Warn("Design exposes no audio tap signals, running silent")
		} else {
			h.scanner.OnCycle(h.tap.OnCycle)
		}
	}

	return h, nil
}

// InputManager exposes the action router for backends.
func (h *Harness) InputManager() *input.Manager { return h.manager }

// Frame exposes the visible frame buffer.
func (h *Harness) Frame() *video.FrameBuffer { return h.frame }

// Driver exposes the clock driver, mainly for tests and the export path.
func (h *Harness) Driver() *clock.Driver { return h.driver }

// Ring exposes the audio bridge buffer, nil outside AudioSim mode.
func (h *Harness) Ring() *audio.Ring { return h.ring }

// RequestQuit asks the loop to stop after the current frame. The frame scan
// itself is never interrupted; the quit flag is the loop's only
// cancellation point.
func (h *Harness) RequestQuit() { h.quit = true }

// Run drives the main loop: reset, one warmup frame, then scan/present
// until quit. Device failures abort immediately; acquired resources are
// released on the way out.
func (h *Harness) Run(b backend.Backend, lim timing.Limiter) error {
	cfg := backend.Config{
		Title:        "goosesim",
		Width:        h.cfg.Geometry.VisibleW,
		Height:       h.cfg.Geometry.VisibleH,
		Scale:        1,
		InputManager: h.manager,
		Callbacks:    backend.Callbacks{OnQuit: h.RequestQuit},
	}
	if err := b.Init(cfg); err != nil {
		return err
	}
	defer b.Cleanup()

	h.driver.Reset()
	h.scanner.Warmup()

	var sink *audio.Sink
	switch h.cfg.AudioMode {
	case AudioSim:
		if h.tap.Available() {
			var err error
			sink, err = audio.NewSink(audio.SampleRate, audio.RingFill(h.ring))
			if err != nil {
				return err
			}
		}
	case AudioCallback:
		gen, err := audio.NewGenerator(h.driver)
		if err != nil {
			return err
		}
		sink, err = audio.NewSink(audio.SampleRate, audio.GeneratorFill(gen))
		if err != nil {
			return err
		}
	}
	if sink != nil {
		defer sink.Close()
	}

	slog.Info("Harness running",
		"geometry", fmt.Sprintf("%dx%d", h.cfg.Geometry.TotalW, h.cfg.Geometry.TotalH),
		"input_mode", h.cfg.InputMode,
		"audio_mode", h.cfg.AudioMode)

	for !h.quit {
		// In callback-clocked audio mode the audio thread owns the
		// clock, so no frame is scanned.
		if h.cfg.AudioMode != AudioCallback {
			h.scanner.ScanFrame(h.frame)
		}
		if err := b.Update(h.frame); err != nil {
			return err
		}
		lim.WaitForNextFrame()
	}

	if h.ring != nil {
		slog.Info("Audio bridge stats",
			"produced", h.tap.Produced(),
			"drops", h.ring.Drops(),
			"underruns", h.ring.Underruns())
	}
	return nil
}
