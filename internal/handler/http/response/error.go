package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type errorMapping struct {
	target    error
	status    int
	code      string
	messageID string
}

// The interval errors all wrap attendance.ErrInvalidInterval, so they are
// listed before it.
var errorMappings = []errorMapping{
	{attendance.ErrMissingReason, http.StatusBadRequest, "MISSING_REASON", "missing_reason"},
	{attendance.ErrFutureTimestamp, http.StatusBadRequest, "FUTURE_TIMESTAMP", "future_timestamp"},
	{attendance.ErrEndBeforeStart, http.StatusBadRequest, "END_BEFORE_START", "end_before_start"},
	{attendance.ErrIntervalTooShort, http.StatusBadRequest, "INTERVAL_TOO_SHORT", "interval_too_short"},
	{attendance.ErrInvalidInterval, http.StatusBadRequest, "INVALID_INTERVAL", "invalid_interval"},
	{attendance.ErrAlreadyClockedIn, http.StatusConflict, "ALREADY_CLOCKED_IN", "already_clocked_in"},
	{attendance.ErrNoOpenSession, http.StatusNotFound, "NO_OPEN_SESSION", "no_open_session"},
	{attendance.ErrRecordNotFound, http.StatusNotFound, "RECORD_NOT_FOUND", "record_not_found"},
	{attendance.ErrInvalidTransition, http.StatusBadRequest, "INVALID_TRANSITION", "invalid_transition"},
	{attendance.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS", "invalid_status"},
	{attendance.ErrSelfApprovalForbidden, http.StatusForbidden, "SELF_APPROVAL_FORBIDDEN", "self_approval_forbidden"},
	{worker.ErrWorkerNotFound, http.StatusNotFound, "WORKER_NOT_FOUND", "worker_not_found"},
	{worker.ErrWorkerInactive, http.StatusForbidden, "WORKER_INACTIVE", "worker_inactive"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid_credentials"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED", "invalid_token"},
	{auth.ErrManagerAccessRequired, http.StatusForbidden, "FORBIDDEN", "manager_access_required"},
	{department.ErrDepartmentNameExists, http.StatusConflict, "DEPARTMENT_NAME_EXISTS", "department_name_exists"},
	{report.ErrReportGenerationFailed, http.StatusInternalServerError, "REPORT_FAILED", "report_failed"},
}

// HandleError maps domain errors to HTTP responses. Messages are localized
// with the translator attached to the request context.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var batchErr *attendance.BatchError
	if errors.As(err, &batchErr) {
		status, code, message, details := classify(r, batchErr.Err)
		index := strconv.Itoa(batchErr.Index + 1)
		message = i18n.Localize(ctx, "batch_item_failed", "Report #"+index+": "+message, map[string]any{
			"Index":   index,
			"Message": message,
		})
		if details == nil {
			details = map[string]string{}
		}
		details["index"] = index
		Error(w, status, code, message, details)
		return
	}

	status, code, message, details := classify(r, err)
	Error(w, status, code, message, details)
}

func classify(r *http.Request, err error) (status int, code, message string, details map[string]string) {
	ctx := r.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			i18n.Localize(ctx, "validation_failed", "Validation failed"), validationErrs.ToMap()
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "request failed", "error", err, "method", r.Method, "path", r.URL.Path)
			}
			return m.status, m.code, i18n.Localize(ctx, m.messageID, m.target.Error()), nil
		}
	}

	slog.ErrorContext(ctx, "unhandled error", "error", err, "method", r.Method, "path", r.URL.Path)
	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		i18n.Localize(ctx, "internal_error", "An unexpected error occurred"), nil
}
