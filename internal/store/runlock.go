package store

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrRunLockHeld indicates another ingestion run already holds this
// database's run lock.
var ErrRunLockHeld = errors.New("run lock held")

// AcquireRunLock takes the exclusive run lock for this database and
// returns the function that releases it.
//
// The lock is an advisory flock on a sidecar file next to the database
// (<path>.lock), so it is keyed on the database rather than any
// in-process object: a second run against the same database is
// excluded whether it lives in this process or another one. The
// acquisition never waits; a held lock fails immediately with
// ErrRunLockHeld. The sidecar file is left in place after release,
// removing it would race with a concurrent acquirer.
func (s *Store) AcquireRunLock() (release func() error, err error) {
	lockPath := s.path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open run lock %s: %w", lockPath, err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrRunLockHeld, lockPath)
		}
		return nil, fmt.Errorf("acquire run lock %s: %w", lockPath, err)
	}

	// Closing the descriptor drops the flock.
	return f.Close, nil
}
