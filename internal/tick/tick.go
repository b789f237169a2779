// Package tick provides the monotonic 1ms tick counter that the control core
// runs on. The counter wraps; all comparisons must go through Sub or Elapsed,
// which use signed-difference arithmetic and stay correct across wraparound.
package tick

import (
	"context"
	"sync/atomic"
	"time"
)

// Period is the nominal duration of one tick.
const Period = time.Millisecond

// Tick is a wrap-tolerant monotonic counter value, unit 1ms.
type Tick uint32

// Sub returns t - o as a signed difference. Valid as long as the real
// distance between the two ticks is under half the counter range (~24 days).
func (t Tick) Sub(o Tick) int32 {
	return int32(t - o)
}

// Elapsed reports whether at least d ticks have passed between since and now.
func Elapsed(now, since Tick, d int32) bool {
	return now.Sub(since) >= d
}

// Counter is the shared tick counter. Advance is called only from the tick
// source; Now may be called from any goroutine.
type Counter struct {
	v atomic.Uint32
}

// Now returns the current tick.
func (c *Counter) Now() Tick {
	return Tick(c.v.Load())
}

// Advance increments the counter by one tick.
func (c *Counter) Advance() {
	c.v.Add(1)
}

// Set overwrites the counter value. For tests and hardware integration.
func (c *Counter) Set(t Tick) {
	c.v.Store(uint32(t))
}

// Run advances the counter once per period until ctx is cancelled. This is
// the periodic tick source; it has no side effect other than the increment.
func (c *Counter) Run(ctx context.Context, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Advance()
		}
	}
}
