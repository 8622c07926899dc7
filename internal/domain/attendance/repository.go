package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists attendance records. It performs no business
// validation; callers check the rules before writing.
type AttendanceRepository interface {
	// FindOpenSession returns the worker's non-manual record without a
	// clock-out, or nil.
	FindOpenSession(ctx context.Context, workerID string) (*Record, error)

	// Insert assigns ID, CreatedAt and UpdatedAt. A second open session for
	// the same worker fails with ErrAlreadyClockedIn.
	Insert(ctx context.Context, record Record) (Record, error)

	// Update applies patch and returns the stored record, or nil when id is
	// unknown. A failed patch precondition yields ErrStaleRecord.
	Update(ctx context.Context, id string, patch RecordPatch) (*Record, error)

	GetByID(ctx context.Context, id string) (*Record, error)

	// FindLatestForDay returns the newest record of the worker whose clock-in
	// lies in [dayStart, dayEnd), or nil.
	FindLatestForDay(ctx context.Context, workerID string, dayStart, dayEnd time.Time) (*Record, error)

	// List returns records matching every supplied filter, newest first with
	// ties broken by id descending.
	List(ctx context.Context, filter RecordFilter) ([]RecordView, error)

	// ListOpenSessions returns automatic records without a clock-out whose
	// clock-in is before clockedInBefore, oldest first.
	ListOpenSessions(ctx context.Context, clockedInBefore time.Time) ([]RecordView, error)
}

// RecordPatch lists the mutable fields of a record. Nil fields are left
// unchanged.
type RecordPatch struct {
	ClockOut  *time.Time
	Status    *Status
	Latitude  *float64
	Longitude *float64
	UpdatedBy *string

	// ExpectStatus makes the update conditional on the stored status.
	ExpectStatus *Status
	// RequireOpen makes the update conditional on clock_out being unset.
	RequireOpen bool
}

// Transactor runs fn in one storage transaction carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
