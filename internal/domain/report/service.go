package report

import (
	"context"
	"io"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// BuildAttendanceReport collects the filtered records with totals
	BuildAttendanceReport(ctx context.Context, filter attendance.RecordFilter) (AttendanceReport, error)

	// GenerateAttendancePDF renders the attendance report as an A4 PDF into w
	GenerateAttendancePDF(ctx context.Context, filter attendance.RecordFilter, w io.Writer) error
}
