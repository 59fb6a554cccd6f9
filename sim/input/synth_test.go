package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wren/goosesim/sim/input/action"
	"github.com/wren/goosesim/sim/input/event"
)

func assertedCycles(s *Synthesizer, bit uint, cycles int) int {
	count := 0
	for i := 0; i < cycles; i++ {
		if s.BusValue()&(1<<bit) != 0 {
			count++
		}
		s.Tick()
	}
	return count
}

func TestSynthesizer_PulseWidthExact(t *testing.T) {
	s := NewSynthesizer(false)
	s.Bind(action.ButtonJump, Line{Bit: 0, Mode: ModePulse, PulseWidth: 50})

	s.Observe(action.ButtonJump, true)
	assert.Equal(t, 50, assertedCycles(s, 0, 200),
		"pin asserted for exactly the pulse width then deasserted")
}

func TestSynthesizer_PulseSurvivesPolls(t *testing.T) {
	// Multiple external polls while the button stays held must not re-arm
	// or extend the pulse; only a release-then-press transition re-arms.
	s := NewSynthesizer(false)
	s.Bind(action.ButtonJump, Line{Bit: 0, Mode: ModePulse, PulseWidth: 30})

	s.Observe(action.ButtonJump, true)
	total := 0
	for poll := 0; poll < 4; poll++ {
		total += assertedCycles(s, 0, 20)
		s.Observe(action.ButtonJump, true) // still held
	}
	assert.Equal(t, 30, total)

	// release and press again: new pulse
	s.Observe(action.ButtonJump, false)
	s.Observe(action.ButtonJump, true)
	assert.Equal(t, 30, assertedCycles(s, 0, 100))
}

func TestSynthesizer_LevelPassThrough(t *testing.T) {
	s := NewSynthesizer(false)
	s.Bind(action.ButtonJump, Line{Bit: 0, Mode: ModeLevel})

	assert.Zero(t, s.BusValue()&1)
	s.Observe(action.ButtonJump, true)
	for i := 0; i < 10; i++ {
		assert.EqualValues(t, 1, s.BusValue()&1, "level holds while held, no pulse limit")
		s.Tick()
	}
	s.Observe(action.ButtonJump, false)
	assert.Zero(t, s.BusValue()&1)
}

func TestSynthesizer_Toggle(t *testing.T) {
	s := NewSynthesizer(false)
	s.Bind(action.ButtonSecondary, Line{Bit: 1, Mode: ModeToggle})

	s.Observe(action.ButtonSecondary, true)
	s.Observe(action.ButtonSecondary, false)
	assert.EqualValues(t, 2, s.BusValue()&2, "first press latches on")

	s.Observe(action.ButtonSecondary, true)
	s.Observe(action.ButtonSecondary, false)
	assert.Zero(t, s.BusValue()&2, "second press latches off")
}

func TestSynthesizer_ActiveLow(t *testing.T) {
	s := NewSynthesizer(true)
	s.Bind(action.ButtonJump, Line{Bit: 0, Mode: ModeLevel})

	assert.EqualValues(t, 0xFF, s.BusValue(), "idle bus is all ones when active low")
	s.Observe(action.ButtonJump, true)
	assert.EqualValues(t, 0xFE, s.BusValue(), "asserted line pulls its bit low")
}

func TestSynthesizer_DefaultPulseWidth(t *testing.T) {
	s := NewSynthesizer(false)
	s.Bind(action.ButtonJump, Line{Bit: 0, Mode: ModePulse})
	s.Observe(action.ButtonJump, true)
	assert.Equal(t, DefaultPulseWidth, assertedCycles(s, 0, 2*DefaultPulseWidth))
}

func TestManager_RoutesButtonsAndCallbacks(t *testing.T) {
	s := NewSynthesizer(false)
	s.Bind(action.ButtonJump, Line{Bit: 0, Mode: ModeLevel})
	m := NewManager(s)

	quitCalled := false
	m.On(action.HarnessQuit, event.Press, func() { quitCalled = true })

	m.Trigger(action.ButtonJump, event.Press)
	assert.EqualValues(t, 1, s.BusValue()&1, "button actions feed the synthesizer")

	m.Trigger(action.ButtonJump, event.Release)
	assert.Zero(t, s.BusValue()&1)

	m.Trigger(action.HarnessQuit, event.Press)
	assert.True(t, quitCalled, "non-button actions fire callbacks")
}
