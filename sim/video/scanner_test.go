package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wren/goosesim/sim/clock"
)

// busDesign counts cycles and drives a predetermined sequence of bus
// values, one per cycle.
type busDesign struct {
	clk    bool
	cycles int
	busFor func(cycle int) uint8
	out    uint8
}

func (d *busDesign) SetClock(high bool) {
	if high && !d.clk {
		d.cycles++
		d.out = d.busFor(d.cycles)
	}
	d.clk = high
}
func (d *busDesign) SetResetN(bool)  {}
func (d *busDesign) SetInputs(uint8) {}
func (d *busDesign) Inputs() uint8   { return 0 }
func (d *busDesign) Outputs() uint8  { return d.out }
func (d *busDesign) Eval()           {}

func TestScanner_CycleAndPixelCounts(t *testing.T) {
	geom := Geometry{TotalW: 10, TotalH: 8, VisibleW: 6, VisibleH: 4}
	require.NoError(t, geom.Validate())

	d := &busDesign{busFor: func(int) uint8 { return 0x88 }}
	s := NewScanner(clock.NewDriver(d), geom)
	fb := NewFrameBuffer(geom.VisibleW, geom.VisibleH)

	s.Warmup()
	assert.Equal(t, geom.CyclesPerFrame(), d.cycles, "warmup runs exactly one frame of cycles")

	hookCalls := 0
	s.OnCycle(func() { hookCalls++ })

	s.ScanFrame(fb)
	assert.Equal(t, 2*geom.CyclesPerFrame(), d.cycles, "one frame scan is one cycle per scan position")
	assert.Equal(t, geom.CyclesPerFrame(), hookCalls, "hook fires once per cycle")
}

func TestScanner_RowMajorOrder(t *testing.T) {
	geom := Geometry{TotalW: 8, TotalH: 6, VisibleW: 4, VisibleH: 3}

	// Drive one distinct gray level per cycle: the frame buffer must pick
	// up exactly the cycles at visible scan positions, in order.
	d := &busDesign{busFor: func(cycle int) uint8 {
		// low 2 bits of the cycle index on all three channels
		v := uint8(cycle) & 3
		var bus uint8
		bus |= (v&1)<<4 | (v>>1)&1
		bus |= (v&1)<<5 | ((v>>1)&1)<<1
		bus |= (v&1)<<6 | ((v>>1)&1)<<2
		return bus
	}}
	s := NewScanner(clock.NewDriver(d), geom)
	fb := NewFrameBuffer(geom.VisibleW, geom.VisibleH)
	s.ScanFrame(fb)

	k := 0
	cycle := 0
	for v := 0; v < geom.TotalH; v++ {
		for h := 0; h < geom.TotalW; h++ {
			cycle++
			if v < geom.VisibleH && h < geom.VisibleW {
				want := Expand2(uint8(cycle) & 3)
				got := fb.ToSlice()[k]
				assert.Equal(t, PackARGB(uint8(cycle)&3, uint8(cycle)&3, uint8(cycle)&3), got,
					"pixel %d should sample scan position (%d,%d)", k, h, v)
				assert.Equal(t, uint32(want), got>>16&0xFF)
				k++
			}
		}
	}
	assert.Equal(t, geom.VisibleW*geom.VisibleH, k)
}

func TestGeometry_Validate(t *testing.T) {
	assert.NoError(t, VGA640x480.Validate())
	assert.Error(t, Geometry{TotalW: 10, TotalH: 10, VisibleW: 11, VisibleH: 5}.Validate())
	assert.Error(t, Geometry{}.Validate())
}

func TestGeometry_Refresh(t *testing.T) {
	assert.Equal(t, 800*525, VGA640x480.CyclesPerFrame())
	assert.InDelta(t, 59.94, VGA640x480.RefreshHz(), 0.01)
}
