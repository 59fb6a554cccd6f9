package video

import "fmt"

// Geometry describes a fixed raster scan: total dimensions including
// blanking, and the visible rectangle sampled into the frame buffer. One
// simulated cycle corresponds to exactly one scan position, row-major,
// v outer, h inner.
type Geometry struct {
	TotalW   int
	TotalH   int
	VisibleW int
	VisibleH int
}

// VGA640x480 is the standard 640x480@60 scan: 800x525 total positions.
var VGA640x480 = Geometry{TotalW: 800, TotalH: 525, VisibleW: 640, VisibleH: 480}

// PixelClockHz is the nominal dot clock for VGA640x480, used only for
// real-time frame pacing.
const PixelClockHz = 25_175_000

// Validate checks that the visible rectangle fits inside the total scan.
func (g Geometry) Validate() error {
	if g.TotalW <= 0 || g.TotalH <= 0 {
		return fmt.Errorf("geometry: non-positive total dimensions %dx%d", g.TotalW, g.TotalH)
	}
	if g.VisibleW > g.TotalW || g.VisibleH > g.TotalH {
		return fmt.Errorf("geometry: visible %dx%d exceeds total %dx%d",
			g.VisibleW, g.VisibleH, g.TotalW, g.TotalH)
	}
	return nil
}

// CyclesPerFrame is the number of simulated cycles one frame scan takes.
func (g Geometry) CyclesPerFrame() int { return g.TotalW * g.TotalH }

// RefreshHz is the frame rate implied by the dot clock and the scan size.
func (g Geometry) RefreshHz() float64 {
	return float64(PixelClockHz) / float64(g.CyclesPerFrame())
}
