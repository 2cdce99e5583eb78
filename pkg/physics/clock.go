package physics

import (
	"sync"
	"time"
)

// Clock supplies the wall-clock time a Body reads once per call into
// Update or ReportViewportMotion.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real system time with its monotonic component.
type SystemClock struct{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. Headless runs and tests use it to
// replay a frame sequence deterministically.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a manual clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new reading.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// seconds converts the interval between two readings to float seconds.
func seconds(from, to time.Time) float64 {
	return to.Sub(from).Seconds()
}
