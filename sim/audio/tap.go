package audio

import (
	"github.com/wren/goosesim/sim/design"
)

// ToUnsigned converts a signed sample to the unsigned representation the
// sink wants. Flipping the sign bit is identical to adding half the range.
func ToUnsigned(s int16) uint16 { return uint16(s) ^ 0x8000 }

// ToSigned is the inverse conversion.
func ToSigned(u uint16) int16 { return int16(u ^ 0x8000) }

// Tap watches the design's new-sample strobe once per simulated cycle and
// forwards fresh samples into the ring. It runs on the simulation side and
// is the ring's only writer.
type Tap struct {
	insp design.Inspector
	ring *Ring

	available bool
	produced  uint64
}

// NewTap wires the tap to a design. If the design does not expose the
// instrumentation signals the tap stays quiet rather than failing: the
// harness can run video-only against a model with no audio hierarchy.
func NewTap(d design.Design, ring *Ring) *Tap {
	t := &Tap{ring: ring}
	if insp, ok := d.(design.Inspector); ok {
		if _, ok := insp.Signal(design.SigNewSample); ok {
			t.insp = insp
			t.available = true
		}
	}
	return t
}

// Available reports whether the design exposes the sample tap signals.
func (t *Tap) Available() bool { return t.available }

// Produced reports how many samples the tap has pushed (including drops).
func (t *Tap) Produced() uint64 { return t.produced }

// OnCycle checks the strobe and pushes the current sample when it is high.
// It is registered as a scanner cycle hook.
func (t *Tap) OnCycle() {
	if !t.available {
		return
	}
	strobe, _ := t.insp.Signal(design.SigNewSample)
	if strobe == 0 {
		return
	}
	raw, _ := t.insp.Signal(design.SigSampleReg)
	t.ring.Push(ToUnsigned(int16(uint16(raw))))
	t.produced++
}
