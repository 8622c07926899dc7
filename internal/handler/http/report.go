package http

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Attendance report with totals as JSON
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Attendance report as a downloadable PDF
	DownloadAttendancePDF(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	filter, ok := scopedRecordFilter(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.BuildAttendanceReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// DownloadAttendancePDF handles GET /reports/attendance/pdf
func (h *reportHandlerImpl) DownloadAttendancePDF(w http.ResponseWriter, r *http.Request) {
	filter, ok := scopedRecordFilter(w, r)
	if !ok {
		return
	}

	// Render fully before writing so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.GenerateAttendancePDF(r.Context(), filter, &buf); err != nil {
		response.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
