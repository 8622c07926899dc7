package attendance

import (
	"time"
)

// Record is one attendance interval of a worker. A nil ClockOut means the
// session is still open.
type Record struct {
	ID            string
	WorkerID      string
	ClockIn       time.Time
	ClockOut      *time.Time
	Status        Status
	IsManualEntry bool
	ManualReason  *string
	Latitude      *float64
	Longitude     *float64
	UpdatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOpen reports whether the record is an open session.
func (r Record) IsOpen() bool {
	return r.ClockOut == nil
}

// Elapsed returns the worked duration, or an open marker.
func (r Record) Elapsed() (Elapsed, error) {
	return ElapsedHours(r.ClockIn, r.ClockOut)
}

// RecordView is a record joined with the display data of its worker.
type RecordView struct {
	Record

	WorkerName       string
	WorkerExternalID string
	DepartmentID     *string
	DepartmentName   *string
	// ApproverName is set once a manual record left PENDING.
	ApproverName *string
}
