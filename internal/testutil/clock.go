// Package testutil provides deterministic clocks for tests and for
// the scenario harness.
package testutil

import "sync"

// TickingClock is a deterministic record.Clock that advances by one
// second per Now() call. It makes consecutive mutations distinct
// without touching wall time, so scenario traces are reproducible.
//
// Thread-safety: all methods are safe for concurrent use.
type TickingClock struct {
	mu    sync.Mutex
	start int64
	now   int64
}

// NewTickingClock creates a clock whose first Now() returns start.
func NewTickingClock(start int64) *TickingClock {
	return &TickingClock{start: start, now: start}
}

// Now returns the current timestamp and advances the clock by one.
func (c *TickingClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := c.now
	c.now++
	return ts
}

// Reset rewinds the clock to its start value for test reuse.
func (c *TickingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}

// ManualClock is a record.Clock frozen at a fixed instant until
// Advance is called. Freezing forces the same-second fingerprint
// collision the registry is specified to reject, which is otherwise
// awkward to reproduce in a test.
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current instant without advancing.
func (c *ManualClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}
