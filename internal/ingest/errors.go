package ingest

import (
	"errors"
	"fmt"
)

// RunError represents a fault that aborts an ingestion run before any
// per-file work can proceed. Per-file faults never become RunErrors;
// they are absorbed into the audit log and the report.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause (optional).
	Err error
}

// RunErrorCode categorizes run-fatal errors.
type RunErrorCode string

const (
	// ErrCodeDiscoveryFailed indicates the staging area could not be
	// listed, so there is nothing to iterate and no audit trail to
	// produce.
	ErrCodeDiscoveryFailed RunErrorCode = "DISCOVERY_FAILED"

	// ErrCodeRunActive indicates another run already holds this
	// database's run lock.
	ErrCodeRunActive RunErrorCode = "RUN_ACTIVE"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsDiscoveryError returns true for staging discovery failures.
// Uses errors.As to handle wrapped errors.
func IsDiscoveryError(err error) bool {
	var re *RunError
	return errors.As(err, &re) && re.Code == ErrCodeDiscoveryFailed
}

// IsRunActiveError returns true for run-already-active failures.
// Uses errors.As to handle wrapped errors.
func IsRunActiveError(err error) bool {
	var re *RunError
	return errors.As(err, &re) && re.Code == ErrCodeRunActive
}

// NewDiscoveryError creates a RunError for a failed staging listing.
func NewDiscoveryError(err error) *RunError {
	return &RunError{
		Code:    ErrCodeDiscoveryFailed,
		Message: "cannot list staging area",
		Err:     err,
	}
}

// NewRunActiveError creates a RunError for a rejected concurrent run.
func NewRunActiveError(err error) *RunError {
	return &RunError{
		Code:    ErrCodeRunActive,
		Message: "an ingestion run is already active for this database",
		Err:     err,
	}
}
