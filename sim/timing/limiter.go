// Package timing paces the harness loop to the scan's refresh rate.
package timing

import "time"

// Limiter controls frame rate timing.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame. Returns
	// immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
type TickerLimiter struct {
	ticker *time.Ticker
	period time.Duration
}

// NewTickerLimiter paces frames at the given rate.
func NewTickerLimiter(refreshHz float64) *TickerLimiter {
	period := time.Duration(float64(time.Second) / refreshHz)
	return &TickerLimiter{
		ticker: time.NewTicker(period),
		period: period,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
