package ingest

import "time"

// Clock supplies ingestion timestamps (loaded_at, logged_at).
// Production code uses SystemClock; tests substitute a fixed clock so
// stored timestamps and report goldens are deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
