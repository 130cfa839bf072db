package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe wall clock pinned to a known instant.
//
// Substituting it for the system clock makes loaded_at / logged_at
// values and golden reports deterministic. Advance moves it forward
// explicitly; it never ticks on its own.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
