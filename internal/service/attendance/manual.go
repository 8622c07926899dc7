package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// SubmitManualReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SubmitManualReport(ctx context.Context, req attendance.SubmitManualReportRequest) (attendance.Record, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return attendance.Record{}, attendance.ErrMissingReason
	}

	if err := attendance.ValidateManualInterval(req.ClockIn, req.ClockOut, s.now(), s.loc); err != nil {
		return attendance.Record{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	if err := s.requireActiveWorker(ctx, req.WorkerID); err != nil {
		return attendance.Record{}, err
	}

	clockOut := req.ClockOut
	workerID := req.WorkerID

	// Manual entries are closed intervals, so no open-session check applies.
	record, err := s.Insert(ctx, attendance.Record{
		WorkerID:      req.WorkerID,
		ClockIn:       req.ClockIn,
		ClockOut:      &clockOut,
		Status:        attendance.InitialStatus(true),
		IsManualEntry: true,
		ManualReason:  &reason,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		UpdatedBy:     &workerID,
	})
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to insert manual report: %w", err)
	}

	slog.InfoContext(ctx, "manual report submitted", "worker_id", record.WorkerID, "record_id", record.ID)
	return record, nil
}

// SubmitManualReports implements attendance.AttendanceService. Every interval
// is stored by its own SubmitManualReport call; records stored before a
// failure are returned along with the *attendance.BatchError.
func (s *AttendanceServiceImpl) SubmitManualReports(ctx context.Context, reqs []attendance.SubmitManualReportRequest) ([]attendance.Record, error) {
	if len(reqs) == 0 {
		return nil, validator.ValidationErrors{{
			Field:   "reports",
			Message: "at least one report is required",
		}}
	}

	records := make([]attendance.Record, 0, len(reqs))
	for i, req := range reqs {
		record, err := s.SubmitManualReport(ctx, req)
		if err != nil {
			return records, &attendance.BatchError{Index: i, Err: err}
		}
		records = append(records, record)
	}

	return records, nil
}
