package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return rec.Code, resp
}

func TestHandleError_WithoutTranslatorFallsBackToErrorText(t *testing.T) {
	status, resp := handle(t, fmt.Errorf("clock in: %w", attendance.ErrAlreadyClockedIn))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CLOCKED_IN", resp.Error.Code)
	assert.Equal(t, attendance.ErrAlreadyClockedIn.Error(), resp.Error.Message)
}

func TestHandleError_IntervalKinds(t *testing.T) {
	_, resp := handle(t, attendance.ErrIntervalTooShort)
	assert.Equal(t, "INTERVAL_TOO_SHORT", resp.Error.Code)

	_, resp = handle(t, attendance.ErrEndBeforeStart)
	assert.Equal(t, "END_BEFORE_START", resp.Error.Code)

	_, resp = handle(t, attendance.ErrInvalidInterval)
	assert.Equal(t, "INVALID_INTERVAL", resp.Error.Code)
}

func TestHandleError_Validation(t *testing.T) {
	status, resp := handle(t, validator.ValidationErrors{{Field: "name", Message: "name is required"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "name is required", resp.Error.Details["name"])
}

func TestHandleError_Batch(t *testing.T) {
	status, resp := handle(t, &attendance.BatchError{Index: 2, Err: attendance.ErrFutureTimestamp})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "FUTURE_TIMESTAMP", resp.Error.Code)
	assert.Equal(t, "3", resp.Error.Details["index"])
	assert.Equal(t, "Report #3: "+attendance.ErrFutureTimestamp.Error(), resp.Error.Message)
}

func TestHandleError_Unknown(t *testing.T) {
	status, resp := handle(t, fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", resp.Error.Code)

	status, _ = handle(t, department.ErrDepartmentNameExists)
	assert.Equal(t, http.StatusConflict, status)
}
