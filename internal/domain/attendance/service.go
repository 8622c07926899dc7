package attendance

import (
	"context"
)

// AttendanceService defines the attendance workflow: clocking, manual
// reports, approval and queries.
type AttendanceService interface {
	// ClockIn opens a session for the worker at the current time
	ClockIn(ctx context.Context, req ClockRequest) (Record, error)

	// ClockOut closes the worker's open session at the current time
	ClockOut(ctx context.Context, req ClockRequest) (Record, error)

	// GetTodayRecord returns the worker's latest record clocked in today, or nil
	GetTodayRecord(ctx context.Context, workerID string) (*Record, error)

	// SubmitManualReport stores a retroactive interval awaiting approval
	SubmitManualReport(ctx context.Context, req SubmitManualReportRequest) (Record, error)

	// SubmitManualReports submits each interval separately and stops at the
	// first failure with a *BatchError
	SubmitManualReports(ctx context.Context, reqs []SubmitManualReportRequest) ([]Record, error)

	// SetStatus moves a PENDING record to APPROVED or REJECTED
	SetStatus(ctx context.Context, req SetStatusRequest) (Record, error)

	// QueryRecords lists records joined with worker display data
	QueryRecords(ctx context.Context, filter RecordFilter) ([]RecordView, error)
}
