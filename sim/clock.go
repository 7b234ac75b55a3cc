package sim

import (
	"sync"
	"time"
)

// DefaultTick is the length of one input time unit: a tenth of a second.
const DefaultTick = 100 * time.Millisecond

// Clock reports time relative to the simulation origin and converts between
// ticks (the unit of arrival and service times) and wall durations.
type Clock struct {
	tick time.Duration
	now  func() time.Time

	mu     sync.RWMutex
	origin time.Time
}

// NewClock creates a Clock with the given tick length. A non-positive tick
// falls back to DefaultTick. Start must be called before the simulation runs.
func NewClock(tick time.Duration) *Clock {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Clock{tick: tick, now: time.Now}
}

// Start captures the simulation origin.
func (c *Clock) Start() {
	c.mu.Lock()
	c.origin = c.now()
	c.mu.Unlock()
}

// Origin returns the instant captured by Start.
func (c *Clock) Origin() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin
}

// Tick returns the wall length of one tick.
func (c *Clock) Tick() time.Duration {
	return c.tick
}

// Now returns the current wall instant.
func (c *Clock) Now() time.Time {
	return c.now()
}

// Since returns t relative to the simulation origin.
func (c *Clock) Since(t time.Time) time.Duration {
	return t.Sub(c.Origin())
}

// Elapsed returns the current time relative to the simulation origin.
func (c *Clock) Elapsed() time.Duration {
	return c.Since(c.now())
}

// Duration converts ticks to a wall duration.
func (c *Clock) Duration(ticks int64) time.Duration {
	return time.Duration(ticks) * c.tick
}

// Ticks converts a wall duration to whole ticks, truncating any partial tick.
func (c *Clock) Ticks(d time.Duration) int64 {
	return int64(d / c.tick)
}

// At returns the absolute instant that lies ticks after the origin.
func (c *Clock) At(ticks int64) time.Time {
	return c.Origin().Add(c.Duration(ticks))
}

// Deadline returns the absolute instant that lies ticks after from.
func (c *Clock) Deadline(from time.Time, ticks int64) time.Time {
	return from.Add(c.Duration(ticks))
}
