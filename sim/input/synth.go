// Package input translates externally observed button events into the
// edge-triggered, pulse-width-limited pin signals the hardware expects.
package input

import (
	"github.com/wren/goosesim/sim/input/action"
)

// DefaultPulseWidth is the minimum pulse width, in simulated cycles, that
// the design's input synchronizer needs to register a press reliably. It is
// derived from the design clock rate and its input sampling divider, and is
// deliberately tunable rather than baked into the synthesizer.
const DefaultPulseWidth = 1000

// Mode selects how a button line drives its pin.
type Mode int

const (
	// ModePulse stretches a press edge into a fixed-width pulse.
	ModePulse Mode = iota
	// ModeLevel passes the held level straight through every cycle, for
	// designs that expect a live level rather than an edge.
	ModeLevel
	// ModeToggle flips a latched level on every press edge.
	ModeToggle
)

// Line configures one button-to-pin mapping.
type Line struct {
	Bit        uint
	Mode       Mode
	PulseWidth int // cycles; DefaultPulseWidth when zero
}

type lineState struct {
	cfg       Line
	held      bool
	lastHeld  bool
	countdown int
	toggled   bool
}

// Synthesizer converts level-triggered button observations into per-cycle
// pin values. Observe is called once per event poll; Tick once per
// simulated cycle. The distinction matters: many cycles elapse per poll
// when a whole frame is clocked between polls, so pulse countdowns have to
// decrement inside the cycle loop or the pulse would stretch far past its
// intended width.
type Synthesizer struct {
	activeLow bool
	lines     map[action.Action]*lineState
}

// NewSynthesizer builds a synthesizer. activeLow inverts both the assert
// level of every line and the idle level of unused bus bits.
func NewSynthesizer(activeLow bool) *Synthesizer {
	return &Synthesizer{
		activeLow: activeLow,
		lines:     make(map[action.Action]*lineState),
	}
}

// Bind attaches a button line to an action.
func (s *Synthesizer) Bind(act action.Action, cfg Line) {
	if cfg.PulseWidth == 0 {
		cfg.PulseWidth = DefaultPulseWidth
	}
	s.lines[act] = &lineState{cfg: cfg}
}

// Observe records the current held level for a button. A new press is
// recognized only on a false-to-true transition, which re-arms the pulse
// countdown or flips the toggle latch depending on the line mode.
func (s *Synthesizer) Observe(act action.Action, held bool) {
	ls, ok := s.lines[act]
	if !ok {
		return
	}
	ls.held = held
	if held && !ls.lastHeld {
		switch ls.cfg.Mode {
		case ModePulse:
			ls.countdown = ls.cfg.PulseWidth
		case ModeToggle:
			ls.toggled = !ls.toggled
		}
	}
	ls.lastHeld = held
}

// Tick advances every pulse countdown by one simulated cycle.
func (s *Synthesizer) Tick() {
	for _, ls := range s.lines {
		if ls.countdown > 0 {
			ls.countdown--
		}
	}
}

// BusValue composes the input bus byte for the next cycle: every bound line
// at its asserted or idle level, unused bits held at the idle level.
func (s *Synthesizer) BusValue() uint8 {
	var bus uint8
	if s.activeLow {
		bus = 0xFF
	}
	for _, ls := range s.lines {
		asserted := false
		switch ls.cfg.Mode {
		case ModePulse:
			asserted = ls.countdown > 0
		case ModeLevel:
			asserted = ls.held
		case ModeToggle:
			asserted = ls.toggled
		}
		bit := uint8(1) << ls.cfg.Bit
		if asserted != s.activeLow {
			bus |= bit
		} else {
			bus &^= bit
		}
	}
	return bus
}
