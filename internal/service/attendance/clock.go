package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
)

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var record attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireActiveWorker(ctx, req.WorkerID); err != nil {
			return err
		}

		open, err := s.FindOpenSession(ctx, req.WorkerID)
		if err != nil {
			return fmt.Errorf("failed to find open session: %w", err)
		}
		if open != nil {
			return attendance.ErrAlreadyClockedIn
		}

		record, err = s.Insert(ctx, attendance.Record{
			WorkerID:      req.WorkerID,
			ClockIn:       s.now(),
			Status:        attendance.InitialStatus(false),
			IsManualEntry: false,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				return attendance.ErrAlreadyClockedIn
			}
			return fmt.Errorf("failed to insert attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.InfoContext(ctx, "worker clocked in", "worker_id", record.WorkerID, "record_id", record.ID)
	return record, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var record attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := s.FindOpenSession(ctx, req.WorkerID)
		if err != nil {
			return fmt.Errorf("failed to find open session: %w", err)
		}
		if open == nil {
			return attendance.ErrNoOpenSession
		}

		now := s.now()
		if _, err := attendance.ElapsedHours(open.ClockIn, &now); err != nil {
			return err
		}

		// Location is coalesced: nil fields keep the clock-in values.
		updated, err := s.Update(ctx, open.ID, attendance.RecordPatch{
			ClockOut:    &now,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			RequireOpen: true,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrStaleRecord) {
				slog.WarnContext(ctx, "open session closed concurrently", "worker_id", req.WorkerID, "record_id", open.ID)
				return attendance.ErrNoOpenSession
			}
			return fmt.Errorf("failed to close attendance record: %w", err)
		}
		if updated == nil {
			return attendance.ErrNoOpenSession
		}

		record = *updated
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.InfoContext(ctx, "worker clocked out", "worker_id", record.WorkerID, "record_id", record.ID)
	return record, nil
}

// GetTodayRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayRecord(ctx context.Context, workerID string) (*attendance.Record, error) {
	dayStart, dayEnd := attendance.DayBounds(s.now(), s.loc)

	record, err := s.FindLatestForDay(ctx, workerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return record, nil
}

func (s *AttendanceServiceImpl) requireActiveWorker(ctx context.Context, workerID string) error {
	w, err := s.FindByID(ctx, workerID)
	if err != nil {
		return fmt.Errorf("failed to find worker: %w", err)
	}
	if w == nil {
		return worker.ErrWorkerNotFound
	}
	if !w.IsActive {
		return worker.ErrWorkerInactive
	}
	return nil
}
