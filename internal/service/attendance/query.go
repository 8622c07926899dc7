package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// QueryRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) QueryRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}
