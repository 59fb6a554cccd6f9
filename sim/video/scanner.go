package video

import (
	"github.com/wren/goosesim/sim/clock"
)

// CycleHook runs once per simulated cycle inside the scan loop. The pulse
// synthesizer and the audio tap hang off this: their counters have to move
// in simulated time, not once per frame.
type CycleHook func()

// Scanner walks the raster scan, clocking the design once per scan position
// and sampling the output bus inside the visible rectangle.
type Scanner struct {
	driver *clock.Driver
	geom   Geometry
	hooks  []CycleHook
	warmed bool
}

// NewScanner builds a scanner for the given driver and geometry. The
// geometry must already be validated.
func NewScanner(driver *clock.Driver, geom Geometry) *Scanner {
	return &Scanner{driver: driver, geom: geom}
}

// OnCycle registers a hook called after every cycle, both during warmup and
// scanning.
func (s *Scanner) OnCycle(h CycleHook) {
	s.hooks = append(s.hooks, h)
}

// Warmed reports whether the warmup frame has been run.
func (s *Scanner) Warmed() bool { return s.warmed }

// Warmup runs exactly one frame's worth of cycles with no output sampled,
// letting the scan counters inside the design settle. It must run once
// after reset, before the first ScanFrame.
func (s *Scanner) Warmup() {
	for i := 0; i < s.geom.CyclesPerFrame(); i++ {
		s.cycle()
	}
	s.warmed = true
}

// ScanFrame runs one full frame: TotalW*TotalH cycles, writing exactly
// VisibleW*VisibleH expanded pixels into fb in row-major order from offset
// 0. The frame buffer is borrowed only for the duration of the call.
func (s *Scanner) ScanFrame(fb *FrameBuffer) {
	pixels := fb.ToSlice()
	k := 0
	d := s.driver.Design()
	for v := 0; v < s.geom.TotalH; v++ {
		for h := 0; h < s.geom.TotalW; h++ {
			s.cycle()
			if v < s.geom.VisibleH && h < s.geom.VisibleW {
				pixels[k] = BusToARGB(d.Outputs())
				k++
			}
		}
	}
}

func (s *Scanner) cycle() {
	s.driver.Cycle()
	for _, h := range s.hooks {
		h()
	}
}
