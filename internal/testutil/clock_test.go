package testutil

import (
	"testing"
	"time"
)

func TestFixedClock(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	c := NewFixedClock(t0)

	if !c.Now().Equal(t0) {
		t.Errorf("Now() = %v, want %v", c.Now(), t0)
	}
	if !c.Now().Equal(c.Now()) {
		t.Error("Now() must not tick on its own")
	}

	c.Advance(time.Hour)
	if !c.Now().Equal(t0.Add(time.Hour)) {
		t.Errorf("Now() after Advance = %v, want %v", c.Now(), t0.Add(time.Hour))
	}
}
