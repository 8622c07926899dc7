package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	worker.WorkerRepository
	tx  attendance.Transactor
	loc *time.Location
	now func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

// NewAttendanceService builds the attendance workflow. loc decides calendar
// days for the same-day rule and for GetTodayRecord.
func NewAttendanceService(
	tx attendance.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	loc *time.Location,
	opts ...Option,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	s := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		WorkerRepository:     workerRepo,
		tx:                   tx,
		loc:                  loc,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
