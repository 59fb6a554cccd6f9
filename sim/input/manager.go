package input

import (
	"github.com/wren/goosesim/sim/input/action"
	"github.com/wren/goosesim/sim/input/event"
)

// Manager routes actions coming from a backend either into the pin
// synthesizer (hardware button lines) or into registered callbacks (harness
// features like quit or snapshot).
type Manager struct {
	synth    *Synthesizer
	handlers map[action.Action]map[event.Type][]func()
}

func NewManager(synth *Synthesizer) *Manager {
	return &Manager{
		synth:    synth,
		handlers: make(map[action.Action]map[event.Type][]func()),
	}
}

// On registers a callback for an action and event type.
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles an action. Button lines update the synthesizer's held
// state; everything else fires callbacks.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if m.synth != nil {
		if _, bound := m.synth.lines[act]; bound {
			m.synth.Observe(act, evt == event.Press)
			return
		}
	}
	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
