package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// traceDesign records the order of pin operations.
type traceDesign struct {
	ops   []string
	clk   bool
	rstn  bool
	edges int
}

func (d *traceDesign) SetClock(high bool) {
	if high && !d.clk {
		d.edges++
	}
	d.clk = high
	if high {
		d.ops = append(d.ops, "clk=1")
	} else {
		d.ops = append(d.ops, "clk=0")
	}
}
func (d *traceDesign) SetResetN(high bool) {
	d.rstn = high
	if high {
		d.ops = append(d.ops, "rstn=1")
	} else {
		d.ops = append(d.ops, "rstn=0")
	}
}
func (d *traceDesign) SetInputs(uint8) {}
func (d *traceDesign) Inputs() uint8   { return 0 }
func (d *traceDesign) Outputs() uint8  { return 0 }
func (d *traceDesign) Eval()           { d.ops = append(d.ops, "eval") }

func TestDriver_CycleSequence(t *testing.T) {
	d := &traceDesign{}
	dr := NewDriver(d)

	dr.Cycle()
	assert.Equal(t, []string{"clk=0", "eval", "clk=1", "eval"}, d.ops,
		"a cycle is low, eval, high, eval")
	assert.EqualValues(t, 1, dr.Cycles())
}

func TestDriver_Warmup(t *testing.T) {
	d := &traceDesign{}
	dr := NewDriver(d)
	dr.Warmup(800 * 525)
	assert.Equal(t, 800*525, d.edges)
	assert.EqualValues(t, 800*525, dr.Cycles())
}

func TestDriver_ResetPulse(t *testing.T) {
	d := &traceDesign{rstn: true}
	dr := NewDriver(d)
	dr.Reset()

	assert.Equal(t, []string{
		"rstn=0", "clk=0", "eval", "clk=1", "eval", "rstn=1", "clk=0", "eval",
	}, d.ops, "reset is asserted across one full cycle then released on a low clock")
}
