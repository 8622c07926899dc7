package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	SubmitManual(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	events            EventPublisher
	loc               *time.Location
}

// NewAttendanceHandler builds the attendance routes. events may be nil.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, events EventPublisher, loc *time.Location) AttendanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		events:            events,
		loc:               loc,
	}
}

func (h *attendanceHandlerImpl) publish(topic, name string, data any) {
	if h.events == nil {
		return
	}
	h.events.Publish(topic, sse.Event{Name: name, Data: data})
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, auth.ErrInvalidToken)
		return
	}

	req, ok := decodeClockRequest(w, r)
	if !ok {
		return
	}
	req.WorkerID = claims.WorkerID

	record, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, i18n.Localize(r.Context(), "clock_in_success", "Clocked in successfully"), attendance.NewRecordResponse(record))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, auth.ErrInvalidToken)
		return
	}

	req, ok := decodeClockRequest(w, r)
	if !ok {
		return
	}
	req.WorkerID = claims.WorkerID

	record, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, i18n.Localize(r.Context(), "clock_out_success", "Clocked out successfully"), attendance.NewRecordResponse(record))
}

// GetToday implements AttendanceHandler. The data is null when the worker
// has not clocked in today.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, auth.ErrInvalidToken)
		return
	}

	record, err := h.attendanceService.GetTodayRecord(r.Context(), claims.WorkerID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if record == nil {
		response.Success(w, nil)
		return
	}
	response.Success(w, attendance.NewRecordResponse(*record))
}

// manualReportBody accepts either a single report or {"reports": [...]}.
type manualReportBody struct {
	attendance.ManualReportPayload
	Reports []attendance.ManualReportPayload `json:"reports"`
}

// SubmitManual implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitManual(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, auth.ErrInvalidToken)
		return
	}

	var body manualReportBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("SubmitManual decode error", "error", err)
		response.BadRequest(w, i18n.Localize(r.Context(), "invalid_request_format", "Invalid request format"), nil)
		return
	}

	if body.Reports == nil {
		req, err := body.ManualReportPayload.ToRequest(claims.WorkerID, h.loc)
		if err != nil {
			response.HandleError(w, r, err)
			return
		}

		record, err := h.attendanceService.SubmitManualReport(r.Context(), req)
		if err != nil {
			response.HandleError(w, r, err)
			return
		}

		result := attendance.NewRecordResponse(record)
		h.publish(sse.TopicManagers, EventManualReportSubmitted, result)
		response.Created(w, i18n.Localize(r.Context(), "manual_report_submitted", "The report was saved and sent for manager approval"), result)
		return
	}

	reqs := make([]attendance.SubmitManualReportRequest, 0, len(body.Reports))
	for i, payload := range body.Reports {
		req, err := payload.ToRequest(claims.WorkerID, h.loc)
		if err != nil {
			response.HandleError(w, r, &attendance.BatchError{Index: i, Err: err})
			return
		}
		reqs = append(reqs, req)
	}

	records, err := h.attendanceService.SubmitManualReports(r.Context(), reqs)
	// Reports stored before a failing item still await approval.
	for _, record := range records {
		h.publish(sse.TopicManagers, EventManualReportSubmitted, attendance.NewRecordResponse(record))
	}
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		result = append(result, attendance.NewRecordResponse(record))
	}

	message := i18n.Localize(r.Context(), "manual_reports_submitted",
		strconv.Itoa(len(records))+" reports were saved and sent for manager approval",
		map[string]any{"Count": len(records)})
	response.Created(w, message, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := scopedRecordFilter(w, r)
	if !ok {
		return
	}

	views, err := h.attendanceService.QueryRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result := make([]attendance.RecordResponse, 0, len(views))
	for _, v := range views {
		result = append(result, attendance.NewRecordViewResponse(v))
	}
	response.Success(w, result)
}

// SetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, auth.ErrInvalidToken)
		return
	}

	var req attendance.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetStatus decode error", "error", err)
		response.BadRequest(w, i18n.Localize(r.Context(), "invalid_request_format", "Invalid request format"), nil)
		return
	}
	req.RecordID = chi.URLParam(r, "id")
	req.ActingWorkerID = claims.WorkerID

	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	record, err := h.attendanceService.SetStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	result := attendance.NewRecordResponse(record)
	h.publish(record.WorkerID, EventStatusChanged, result)
	response.SuccessWithMessage(w, i18n.Localize(r.Context(), "status_updated", "Status updated successfully"), result)
}

// decodeClockRequest reads the optional location. An empty body is allowed.
func decodeClockRequest(w http.ResponseWriter, r *http.Request) (attendance.ClockRequest, bool) {
	var req attendance.ClockRequest
	if r.Body == nil {
		return req, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("clock request decode error", "error", err)
		response.BadRequest(w, i18n.Localize(r.Context(), "invalid_request_format", "Invalid request format"), nil)
		return req, false
	}
	return req, true
}

// parseRecordFilter reads status, is_manual_entry, worker_id and
// department_id from the query string.
func parseRecordFilter(r *http.Request) (attendance.RecordFilter, error) {
	var (
		filter attendance.RecordFilter
		errs   validator.ValidationErrors
		q      = r.URL.Query()
	)

	if v := strings.TrimSpace(q.Get("status")); v != "" {
		status := attendance.Status(strings.ToUpper(v))
		filter.Status = &status
	}

	if v := strings.TrimSpace(q.Get("is_manual_entry")); v != "" {
		manual, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "is_manual_entry",
				Message: "is_manual_entry must be true or false",
			})
		} else {
			filter.IsManualEntry = &manual
		}
	}

	if q.Has("worker_id") {
		v := q.Get("worker_id")
		filter.WorkerID = &v
	}

	if q.Has("department_id") {
		v := q.Get("department_id")
		filter.DepartmentID = &v
	}

	if len(errs) > 0 {
		return attendance.RecordFilter{}, errs
	}

	if err := filter.Validate(); err != nil {
		return attendance.RecordFilter{}, err
	}

	return filter, nil
}

// scopedRecordFilter parses the query filter and limits non-managers to
// their own records.
func scopedRecordFilter(w http.ResponseWriter, r *http.Request) (attendance.RecordFilter, bool) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, r, auth.ErrInvalidToken)
		return attendance.RecordFilter{}, false
	}

	filter, err := parseRecordFilter(r)
	if err != nil {
		response.HandleError(w, r, err)
		return attendance.RecordFilter{}, false
	}

	if !claims.IsManager {
		workerID := claims.WorkerID
		filter.WorkerID = &workerID
	}

	return filter, true
}
