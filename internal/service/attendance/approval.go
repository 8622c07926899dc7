package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// SetStatus implements attendance.AttendanceService. Checks run in order:
// record exists, transition is legal, actor is not the owner.
func (s *AttendanceServiceImpl) SetStatus(ctx context.Context, req attendance.SetStatusRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var record attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.GetByID(ctx, req.RecordID)
		if err != nil {
			return fmt.Errorf("failed to get attendance record: %w", err)
		}
		if current == nil {
			return attendance.ErrRecordNotFound
		}

		next, err := attendance.ParseStatus(req.Status)
		if err != nil || !current.Status.CanTransitionTo(next) {
			return attendance.ErrInvalidTransition
		}

		if req.ActingWorkerID == current.WorkerID {
			return attendance.ErrSelfApprovalForbidden
		}

		actor := req.ActingWorkerID
		expect := current.Status
		updated, err := s.Update(ctx, current.ID, attendance.RecordPatch{
			Status:       &next,
			UpdatedBy:    &actor,
			ExpectStatus: &expect,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrStaleRecord) {
				slog.WarnContext(ctx, "status changed concurrently", "record_id", current.ID, "requested", next)
				return attendance.ErrInvalidTransition
			}
			return fmt.Errorf("failed to update attendance status: %w", err)
		}
		if updated == nil {
			return attendance.ErrRecordNotFound
		}

		record = *updated
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.InfoContext(ctx, "attendance status changed",
		"record_id", record.ID,
		"status", record.Status,
		"updated_by", req.ActingWorkerID,
	)
	return record, nil
}
