package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func NewReportService(attendanceService attendance.AttendanceService, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		loc:               loc,
		now:               time.Now,
	}
}

// BuildAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) BuildAttendanceReport(ctx context.Context, filter attendance.RecordFilter) (report.AttendanceReport, error) {
	views, err := s.attendanceService.QueryRecords(ctx, filter)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	result := report.AttendanceReport{
		GeneratedAt: s.now().In(s.loc).Format(time.RFC3339),
		Timezone:    s.loc.String(),
		Rows:        make([]report.AttendanceReportRow, 0, len(views)),
	}

	var approved time.Duration
	for _, v := range views {
		result.Rows = append(result.Rows, s.toRow(v))

		result.Summary.TotalRecords++
		if v.IsOpen() {
			result.Summary.OpenSessions++
		}
		switch v.Status {
		case attendance.StatusPending:
			result.Summary.PendingRecords++
		case attendance.StatusRejected:
			result.Summary.RejectedRecords++
		case attendance.StatusApproved:
			if elapsed, err := v.Elapsed(); err == nil && !elapsed.Open {
				approved += elapsed.Duration
			}
		}
	}
	result.Summary.TotalApprovedHours = math.Round(approved.Hours()*100) / 100

	return result, nil
}

// GenerateAttendancePDF implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendancePDF(ctx context.Context, filter attendance.RecordFilter, w io.Writer) error {
	data, err := s.BuildAttendanceReport(ctx, filter)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Attendance Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s (%s)", data.GeneratedAt, data.Timezone))
	pdf.Ln(10)

	columns := []struct {
		title string
		width float64
	}{
		{"Worker", 50},
		{"ID", 26},
		{"Department", 36},
		{"Date", 24},
		{"In", 16},
		{"Out", 16},
		{"Hours", 18},
		{"Status", 26},
		{"Manual", 16},
		{"Approver", 45},
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range data.Rows {
		clockOut := "-"
		if row.ClockOut != nil {
			clockOut = *row.ClockOut
		}
		manual := "no"
		if row.IsManualEntry {
			manual = "yes"
		}
		cells := []string{
			row.WorkerName,
			row.WorkerExternalID,
			row.DepartmentName,
			row.Date,
			row.ClockIn,
			clockOut,
			row.Hours,
			row.Status,
			manual,
			row.ApproverName,
		}
		for i, text := range cells {
			pdf.CellFormat(columns[i].width, 6, tr(text), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d   Open: %d   Pending: %d   Rejected: %d",
		data.Summary.TotalRecords,
		data.Summary.OpenSessions,
		data.Summary.PendingRecords,
		data.Summary.RejectedRecords,
	))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total approved hours: %.2f", data.Summary.TotalApprovedHours))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return nil
}

func (s *ReportServiceImpl) toRow(v attendance.RecordView) report.AttendanceReportRow {
	clockIn := v.ClockIn.In(s.loc)
	row := report.AttendanceReportRow{
		RecordID:         v.ID,
		WorkerName:       v.WorkerName,
		WorkerExternalID: v.WorkerExternalID,
		Date:             clockIn.Format("2006-01-02"),
		ClockIn:          clockIn.Format("15:04"),
		Hours:            "-",
		Status:           v.Status.String(),
		IsManualEntry:    v.IsManualEntry,
	}
	if v.DepartmentName != nil {
		row.DepartmentName = *v.DepartmentName
	}
	if v.ApproverName != nil {
		row.ApproverName = *v.ApproverName
	}
	if v.ClockOut != nil {
		out := v.ClockOut.In(s.loc).Format("15:04")
		if !attendance.SameCalendarDay(v.ClockIn, *v.ClockOut, s.loc) {
			out = v.ClockOut.In(s.loc).Format("01-02 15:04")
		}
		row.ClockOut = &out
	}
	if elapsed, err := v.Elapsed(); err == nil {
		row.Hours = elapsed.String()
	}
	return row
}
