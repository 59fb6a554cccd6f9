// Package clock advances a hardware model one cycle at a time. A cycle is
// one low-then-high toggle of the clock pin, evaluating after each edge. This
// is the only way simulated time moves forward.
package clock

import "github.com/wren/goosesim/sim/design"

// Driver owns the clock pin of a design.
type Driver struct {
	d      design.Design
	cycles uint64
}

// NewDriver wraps a design handle. The driver assumes exclusive ownership of
// the clock and reset pins.
func NewDriver(d design.Design) *Driver {
	return &Driver{d: d}
}

// Design returns the wrapped handle for pin access that is not
// clock-related.
func (dr *Driver) Design() design.Design { return dr.d }

// Cycle toggles the clock low then high, evaluating after each edge.
func (dr *Driver) Cycle() {
	dr.d.SetClock(false)
	dr.d.Eval()
	dr.d.SetClock(true)
	dr.d.Eval()
	dr.cycles++
}

// Cycles reports how many cycles have elapsed since construction.
func (dr *Driver) Cycles() uint64 { return dr.cycles }

// Reset pulses rst_n low for one cycle and releases it, leaving the clock
// low so the next Cycle presents a clean rising edge.
func (dr *Driver) Reset() {
	dr.d.SetResetN(false)
	dr.Cycle()
	dr.d.SetResetN(true)
	dr.d.SetClock(false)
	dr.d.Eval()
}

// Warmup runs the given number of cycles without sampling any output. It is
// run once after reset, for exactly one frame's worth of cycles, so the scan
// counters inside the design settle into a known phase before the first
// frame is rendered.
func (dr *Driver) Warmup(cycles int) {
	for i := 0; i < cycles; i++ {
		dr.Cycle()
	}
}
