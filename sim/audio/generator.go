package audio

import (
	"fmt"

	"github.com/wren/goosesim/sim/clock"
	"github.com/wren/goosesim/sim/design"
)

// DefaultReadyTimeout is how many cycles NextSample waits for the
// new-sample strobe before falling back to forcing the divider. One full
// divider period is the natural bound: if no strobe shows up in that window
// the divider state is inconsistent with expectations.
const DefaultReadyTimeout = design.SampleDivPeriod

// SampleRate is the exported sample rate of the design's audio controller,
// derived from the clock and divider constants.
const SampleRate = design.SampleRateHz

// Sound describes one entry of the design's sound-effect catalogue.
type Sound struct {
	Name       string
	Trigger    string // trigger pin signal path
	DurationMs int
}

// Sounds lists the three effects the design can play.
var Sounds = []Sound{
	{Name: "jump", Trigger: design.SigEventJump, DurationMs: design.JumpDurationMs},
	{Name: "death", Trigger: design.SigEventDeath, DurationMs: design.DeathDurationMs},
	{Name: "highscore", Trigger: design.SigEventHighscore, DurationMs: design.HighscoreDurationMs},
}

// Samples is the total rendered length: sound duration plus the fixed
// padding tail, truncated the same way for every sound.
func (s Sound) Samples() int {
	return (s.DurationMs + design.SoundPaddingMs) * SampleRate / 1000
}

// Generator pulls samples out of the design one at a time, used by the
// offline export path and by the callback-clocked live mode. It requires
// exclusive use of the clock driver: nothing else may clock the design
// while a generator is attached.
type Generator struct {
	driver *clock.Driver
	insp   design.Inspector
	forcer design.Forcer

	timeout   int
	fallbacks uint64
}

// NewGenerator wraps a driver whose design exposes the audio tap signals.
func NewGenerator(driver *clock.Driver) (*Generator, error) {
	insp, ok := driver.Design().(design.Inspector)
	if !ok {
		return nil, fmt.Errorf("audio: design exposes no instrumentation signals")
	}
	if _, ok := insp.Signal(design.SigNewSample); !ok {
		return nil, fmt.Errorf("audio: design has no %s signal", design.SigNewSample)
	}
	g := &Generator{driver: driver, insp: insp, timeout: DefaultReadyTimeout}
	g.forcer, _ = driver.Design().(design.Forcer)
	return g, nil
}

// SetReadyTimeout overrides the strobe wait bound.
func (g *Generator) SetReadyTimeout(cycles int) { g.timeout = cycles }

// Fallbacks reports how often the forced-divider path was taken.
func (g *Generator) Fallbacks() uint64 { return g.fallbacks }

func (g *Generator) strobed() (int16, bool) {
	strobe, _ := g.insp.Signal(design.SigNewSample)
	if strobe == 0 {
		return 0, false
	}
	raw, _ := g.insp.Signal(design.SigSampleReg)
	return int16(uint16(raw)), true
}

// NextSample clocks the design until the new-sample strobe fires, bounded
// by the configured timeout. If the strobe never shows, the divider is
// forced near rollover and clocked through: a deliberate re-synchronization
// path, recovered locally and never surfaced as an error.
func (g *Generator) NextSample() int16 {
	for waited := 0; waited < g.timeout; waited++ {
		g.driver.Cycle()
		if s, ok := g.strobed(); ok {
			return s
		}
	}

	g.fallbacks++
	if g.forcer != nil {
		g.forcer.SetSignal(design.SigSampleDiv, design.SampleDivPeriod-2)
		for i := 0; i < 3; i++ {
			g.driver.Cycle()
			if s, ok := g.strobed(); ok {
				return s
			}
		}
	}
	return 0
}

// ForceNext forces the divider to its terminal count and clocks once,
// guaranteeing a fresh sample per call. The live callback-clocked mode uses
// this for deterministic 1:1 sample-to-callback pacing, trading simulation
// fidelity for it.
func (g *Generator) ForceNext() int16 {
	if g.forcer != nil {
		g.forcer.SetSignal(design.SigSampleDiv, design.SampleDivPeriod-1)
	}
	g.driver.Cycle()
	if s, ok := g.strobed(); ok {
		return s
	}
	return 0
}

// Render plays one catalogue sound from a quiet design and returns the
// rendered samples. Trigger protocol: clear every trigger pin, assert
// exactly one, keep it asserted across the first two samples so the
// registered capture logic sees it, then release and keep clocking until
// the full duration plus padding has elapsed.
func (g *Generator) Render(sound Sound) ([]int16, error) {
	if g.forcer == nil {
		return nil, fmt.Errorf("audio: design trigger pins are not writable")
	}

	for _, s := range Sounds {
		g.forcer.SetSignal(s.Trigger, 0)
	}
	g.forcer.SetSignal(design.SigGameRunning, 1)
	for i := 0; i < 5; i++ {
		g.driver.Cycle()
	}

	total := sound.Samples()
	out := make([]int16, total)

	g.forcer.SetSignal(sound.Trigger, 1)
	for i := 0; i < 2 && i < total; i++ {
		out[i] = g.NextSample()
	}
	g.forcer.SetSignal(sound.Trigger, 0)

	for i := 2; i < total; i++ {
		out[i] = g.NextSample()
	}
	return out, nil
}
