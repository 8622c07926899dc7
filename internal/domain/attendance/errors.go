package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Interval validation errors. All of them match ErrInvalidInterval.
	ErrInvalidInterval  = errors.New("invalid time interval")
	ErrFutureTimestamp  = fmt.Errorf("%w: timestamp is in the future", ErrInvalidInterval)
	ErrEndBeforeStart   = fmt.Errorf("%w: clock-out must be after clock-in", ErrInvalidInterval)
	ErrIntervalTooShort = fmt.Errorf("%w: same-day interval must be at least one minute", ErrInvalidInterval)

	ErrMissingReason = errors.New("a reason is required for a manual report")

	// Clock errors
	ErrAlreadyClockedIn = errors.New("worker is already clocked in")
	ErrNoOpenSession    = errors.New("no open clock-in session")

	// Approval errors
	ErrRecordNotFound        = errors.New("attendance record not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrSelfApprovalForbidden = errors.New("a worker cannot change the status of their own record")
	ErrInvalidStatus         = errors.New("status must be one of PENDING, APPROVED, REJECTED")

	// ErrStaleRecord is returned by the store when an update precondition no
	// longer holds because another request changed the record first.
	ErrStaleRecord = errors.New("attendance record was modified concurrently")
)

// BatchError reports which item of a manual report batch failed. Items
// before Index were stored.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("manual report %d: %v", e.Index+1, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
