package worker

import "time"

// Worker is an employee whose attendance is tracked. Identity fields are
// immutable; IsManager and DepartmentID are administered outside this service.
type Worker struct {
	ID           string
	Name         string
	ExternalID   string
	IsManager    bool
	IsActive     bool
	DepartmentID *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	DepartmentName *string
}

// CanApprove reports whether the worker may change record statuses.
func (w *Worker) CanApprove() bool {
	return w.IsManager && w.IsActive
}
