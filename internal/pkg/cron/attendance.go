package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs watches for clock-ins that were never closed. Open sessions
// are only reported; closing them stays with the worker or a manual report.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	staleAfter     time.Duration
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, staleAfter time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		staleAfter:     staleAfter,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_stale_open_sessions", time.Hour, j.ReportStaleOpenSessions)
}

// StaleOpenSessions returns automatic sessions open for longer than the
// configured threshold.
func (j *AttendanceJobs) StaleOpenSessions(ctx context.Context) ([]attendance.RecordView, error) {
	stale, err := j.attendanceRepo.ListOpenSessions(ctx, j.now().Add(-j.staleAfter))
	if err != nil {
		return nil, fmt.Errorf("failed to query open sessions: %w", err)
	}
	return stale, nil
}

func (j *AttendanceJobs) ReportStaleOpenSessions(ctx context.Context) error {
	stale, err := j.StaleOpenSessions(ctx)
	if err != nil {
		return err
	}

	for _, v := range stale {
		slog.WarnContext(ctx, "Cron: open session exceeds threshold",
			"record_id", v.ID,
			"worker_id", v.WorkerID,
			"worker_name", v.WorkerName,
			"clock_in", v.ClockIn,
			"open_for", j.now().Sub(v.ClockIn).Round(time.Minute),
		)
	}
	slog.InfoContext(ctx, "Cron: stale open session check finished", "stale_count", len(stale))
	return nil
}
