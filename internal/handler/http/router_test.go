package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	workerID  = "0190a8f2-7b8c-7b4a-8a2b-000000000001"
	managerID = "0190a8f2-7b8c-7b4a-8a2b-000000000002"
)

type stubAttendanceService struct {
	mu sync.Mutex

	clockIn       func(req attendance.ClockRequest) (attendance.Record, error)
	submitManual  func(req attendance.SubmitManualReportRequest) (attendance.Record, error)
	submitManuals func(reqs []attendance.SubmitManualReportRequest) ([]attendance.Record, error)
	setStatus     func(req attendance.SetStatusRequest) (attendance.Record, error)

	lastFilter attendance.RecordFilter
}

func (s *stubAttendanceService) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.Record, error) {
	return s.clockIn(req)
}

func (s *stubAttendanceService) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrNoOpenSession
}

func (s *stubAttendanceService) GetTodayRecord(ctx context.Context, workerID string) (*attendance.Record, error) {
	return nil, nil
}

func (s *stubAttendanceService) SubmitManualReport(ctx context.Context, req attendance.SubmitManualReportRequest) (attendance.Record, error) {
	return s.submitManual(req)
}

func (s *stubAttendanceService) SubmitManualReports(ctx context.Context, reqs []attendance.SubmitManualReportRequest) ([]attendance.Record, error) {
	return s.submitManuals(reqs)
}

func (s *stubAttendanceService) SetStatus(ctx context.Context, req attendance.SetStatusRequest) (attendance.Record, error) {
	return s.setStatus(req)
}

func (s *stubAttendanceService) QueryRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter
	return []attendance.RecordView{}, nil
}

type stubReportService struct{}

func (stubReportService) BuildAttendanceReport(ctx context.Context, filter attendance.RecordFilter) (report.AttendanceReport, error) {
	return report.AttendanceReport{}, nil
}

func (stubReportService) GenerateAttendancePDF(ctx context.Context, filter attendance.RecordFilter, w io.Writer) error {
	_, err := w.Write([]byte("%PDF-1.3"))
	return err
}

type stubAuthService struct{}

func (stubAuthService) Authenticate(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if req.Password != "secret" {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	return auth.LoginResponse{AccessToken: "token", Worker: auth.WorkerSummary{ID: workerID}}, nil
}

type stubDepartmentService struct{}

func (stubDepartmentService) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	return []department.DepartmentResponse{}, nil
}

func (stubDepartmentService) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{ID: "d1", Name: req.Name}, nil
}

type stubWorkerRepo struct {
	workers map[string]worker.Worker
}

func (s *stubWorkerRepo) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	w, ok := s.workers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *stubWorkerRepo) FindByExternalID(ctx context.Context, externalID string) (*worker.Worker, error) {
	return nil, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type testServer struct {
	router     http.Handler
	jwt        jwt.Service
	attendance *stubAttendanceService
	workers    *stubWorkerRepo
	hub        *sse.Hub
}

func newTestServer(t *testing.T, pinger Pinger) *testServer {
	t.Helper()

	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)
	translator, err := i18n.New("en")
	require.NoError(t, err)

	svc := &stubAttendanceService{}
	workers := &stubWorkerRepo{workers: map[string]worker.Worker{
		workerID:  {ID: workerID, Name: "Worker", IsActive: true},
		managerID: {ID: managerID, Name: "Manager", IsManager: true, IsActive: true},
	}}
	hub := sse.NewHub()
	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, Env: "test", LogLevel: slog.LevelError},
		jwtService,
		translator,
		workers,
		NewHealthHandler(pinger),
		NewAuthHandler(stubAuthService{}),
		NewAttendanceHandler(svc, hub, time.UTC),
		NewReportHandler(stubReportService{}),
		NewDepartmentHandler(stubDepartmentService{}),
		NewEventsHandler(hub),
	)

	return &testServer{router: router, jwt: jwtService, attendance: svc, workers: workers, hub: hub}
}

func (s *testServer) token(t *testing.T, id string, manager bool) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(jwt.WorkerClaims{WorkerID: id, ExternalID: "123456782", IsManager: manager})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"external_id":"123456782","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)

	rec = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"external_id":"123456782","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Equal(t, "One of the login details is incorrect, please try again", env.Error.Message)

	rec = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"external_id":"123","password":"secret"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "external_id")
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClockIn(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	var got attendance.ClockRequest
	srv.attendance.clockIn = func(req attendance.ClockRequest) (attendance.Record, error) {
		got = req
		return attendance.Record{ID: "r1", WorkerID: req.WorkerID, ClockIn: time.Now(), Status: attendance.StatusApproved}, nil
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", srv.token(t, workerID, false), `{"latitude":32.08,"longitude":34.78,"worker_id":"someone-else"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, workerID, got.WorkerID)
	require.NotNil(t, got.Latitude)
	assert.Equal(t, 32.08, *got.Latitude)

	// Empty body is fine.
	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", srv.token(t, workerID, false), "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.attendance.clockIn = func(req attendance.ClockRequest) (attendance.Record, error) {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", srv.token(t, workerID, false), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_CLOCKED_IN", decode(t, rec).Error.Code)
}

func TestClockOut_NoOpenSession(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-out", srv.token(t, workerID, false), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_OPEN_SESSION", decode(t, rec).Error.Code)
}

func TestGetToday_NoRecord(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodGet, "/api/v1/attendance/today", srv.token(t, workerID, false), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)
}

func TestSubmitManual_Single(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	var got attendance.SubmitManualReportRequest
	srv.attendance.submitManual = func(req attendance.SubmitManualReportRequest) (attendance.Record, error) {
		got = req
		out := req.ClockOut
		return attendance.Record{ID: "r1", WorkerID: req.WorkerID, ClockIn: req.ClockIn, ClockOut: &out, Status: attendance.StatusPending, IsManualEntry: true}, nil
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/manual", srv.token(t, workerID, false),
		`{"clock_in":"2024-01-01T09:00","clock_out":"2024-01-01T17:00","reason":"forgot"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, workerID, got.WorkerID)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), got.ClockIn)
	assert.Equal(t, "forgot", got.Reason)
}

func TestSubmitManual_LocalizedError(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.attendance.submitManual = func(req attendance.SubmitManualReportRequest) (attendance.Record, error) {
		return attendance.Record{}, attendance.ErrFutureTimestamp
	}

	body := `{"clock_in":"2099-01-01T09:00","clock_out":"2099-01-01T17:00","reason":"x"}`

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/manual", srv.token(t, workerID, false), body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "FUTURE_TIMESTAMP", env.Error.Code)
	assert.Equal(t, "Cannot report a future date or time", env.Error.Message)

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/manual", srv.token(t, workerID, false), body, "Accept-Language", "he-IL")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "לא ניתן לדווח על תאריך או שעה עתידיים", decode(t, rec).Error.Message)
	assert.Equal(t, "he", rec.Header().Get("Content-Language"))
}

func TestSubmitManual_Batch(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	var got []attendance.SubmitManualReportRequest
	srv.attendance.submitManuals = func(reqs []attendance.SubmitManualReportRequest) ([]attendance.Record, error) {
		got = reqs
		return []attendance.Record{{ID: "r1"}}, &attendance.BatchError{Index: 1, Err: attendance.ErrMissingReason}
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/manual", srv.token(t, workerID, false),
		`{"reports":[{"clock_in":"2024-01-01T09:00","clock_out":"2024-01-01T12:00","reason":"a"},{"clock_in":"2024-01-01T13:00","clock_out":"2024-01-01T17:00","reason":" "}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, got, 2)

	env := decode(t, rec)
	assert.Equal(t, "MISSING_REASON", env.Error.Code)
	assert.Equal(t, "2", env.Error.Details["index"])
	assert.Equal(t, "Report #2: A reason is required for a manual report", env.Error.Message)
}

func TestSubmitManual_BatchBadTimestamp(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.attendance.submitManuals = func(reqs []attendance.SubmitManualReportRequest) ([]attendance.Record, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/manual", srv.token(t, workerID, false),
		`{"reports":[{"clock_in":"yesterday","clock_out":"2024-01-01T12:00","reason":"a"}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "1", env.Error.Details["index"])
	assert.Contains(t, env.Error.Details, "clock_in")
}

func TestList_ScopesNonManagers(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodGet, "/api/v1/attendance?worker_id="+managerID+"&status=pending", srv.token(t, workerID, false), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.attendance.lastFilter.WorkerID)
	assert.Equal(t, workerID, *srv.attendance.lastFilter.WorkerID)
	require.NotNil(t, srv.attendance.lastFilter.Status)
	assert.Equal(t, attendance.StatusPending, *srv.attendance.lastFilter.Status)

	rec = srv.do(t, http.MethodGet, "/api/v1/attendance?worker_id="+workerID+"&is_manual_entry=true", srv.token(t, managerID, true), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, workerID, *srv.attendance.lastFilter.WorkerID)
	require.NotNil(t, srv.attendance.lastFilter.IsManualEntry)
	assert.True(t, *srv.attendance.lastFilter.IsManualEntry)
}

func TestList_InvalidFilter(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodGet, "/api/v1/attendance?status=done&is_manual_entry=maybe", srv.token(t, managerID, true), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "is_manual_entry")

	rec = srv.do(t, http.MethodGet, "/api/v1/attendance?status=done", srv.token(t, managerID, true), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "status")
}

func TestSetStatus(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	var got attendance.SetStatusRequest
	srv.attendance.setStatus = func(req attendance.SetStatusRequest) (attendance.Record, error) {
		got = req
		return attendance.Record{ID: req.RecordID, Status: attendance.StatusApproved}, nil
	}

	rec := srv.do(t, http.MethodPut, "/api/v1/attendance/r1/status", srv.token(t, workerID, false), `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Manager access required", decode(t, rec).Error.Message)

	rec = srv.do(t, http.MethodPut, "/api/v1/attendance/r1/status", srv.token(t, managerID, true), `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r1", got.RecordID)
	assert.Equal(t, managerID, got.ActingWorkerID)
	assert.Equal(t, "APPROVED", got.Status)
}

func TestSetStatus_DemotedManager(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	called := false
	srv.attendance.setStatus = func(req attendance.SetStatusRequest) (attendance.Record, error) {
		called = true
		return attendance.Record{ID: req.RecordID, Status: attendance.StatusApproved}, nil
	}
	token := srv.token(t, managerID, true)

	demoted := srv.workers.workers[managerID]
	demoted.IsManager = false
	srv.workers.workers[managerID] = demoted

	rec := srv.do(t, http.MethodPut, "/api/v1/attendance/r1/status", token, `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)
	assert.False(t, called)

	delete(srv.workers.workers, managerID)
	rec = srv.do(t, http.MethodPost, "/api/v1/departments", token, `{"name":"QA"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetStatus_MissingStatusReachesService(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.attendance.setStatus = func(req attendance.SetStatusRequest) (attendance.Record, error) {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	rec := srv.do(t, http.MethodPut, "/api/v1/attendance/unknown/status", srv.token(t, managerID, true), `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RECORD_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestSetStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{attendance.ErrRecordNotFound, http.StatusNotFound, "RECORD_NOT_FOUND"},
		{attendance.ErrInvalidTransition, http.StatusBadRequest, "INVALID_TRANSITION"},
		{attendance.ErrSelfApprovalForbidden, http.StatusForbidden, "SELF_APPROVAL_FORBIDDEN"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			srv := newTestServer(t, stubPinger{})
			srv.attendance.setStatus = func(req attendance.SetStatusRequest) (attendance.Record, error) {
				return attendance.Record{}, tt.err
			}

			rec := srv.do(t, http.MethodPut, "/api/v1/attendance/r1/status", srv.token(t, managerID, true), `{"status":"REJECTED"}`)
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec).Error.Code)
		})
	}
}

func TestAttendancePDF(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodGet, "/api/v1/reports/attendance/pdf", srv.token(t, workerID, false), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestDepartments(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodPost, "/api/v1/departments", srv.token(t, workerID, false), `{"name":"QA"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/departments", srv.token(t, managerID, true), `{"name":"QA"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/departments", srv.token(t, managerID, true), `{"name":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/departments", srv.token(t, workerID, false), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := newTestServer(t, stubPinger{}).do(t, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = newTestServer(t, stubPinger{err: errors.New("down")}).do(t, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSubmitManual_NotifiesManagers(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.attendance.submitManual = func(req attendance.SubmitManualReportRequest) (attendance.Record, error) {
		out := req.ClockOut
		return attendance.Record{ID: "r1", WorkerID: req.WorkerID, ClockIn: req.ClockIn, ClockOut: &out, Status: attendance.StatusPending, IsManualEntry: true}, nil
	}

	events, cleanup := srv.hub.Subscribe(sse.TopicManagers)
	defer cleanup()

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/manual", srv.token(t, workerID, false),
		`{"clock_in":"2024-01-01T09:00","clock_out":"2024-01-01T17:00","reason":"forgot"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, events, 1)
	event := <-events
	assert.Equal(t, EventManualReportSubmitted, event.Name)
	assert.Equal(t, "r1", event.Data.(attendance.RecordResponse).ID)
}

func TestEventsStream_StatusChanged(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.attendance.setStatus = func(req attendance.SetStatusRequest) (attendance.Record, error) {
		return attendance.Record{ID: req.RecordID, WorkerID: workerID, Status: attendance.StatusApproved}, nil
	}

	server := httptest.NewServer(srv.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events?jwt="+srv.token(t, workerID, false), nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: connected", lines.Text())
	require.True(t, lines.Scan())
	var hello map[string]string
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines.Text(), "data: ")), &hello))
	assert.Equal(t, workerID, hello["worker_id"])

	rec := srv.do(t, http.MethodPut, "/api/v1/attendance/r1/status", srv.token(t, managerID, true), `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var eventLine, dataLine string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "event: "+EventStatusChanged) {
			eventLine = lines.Text()
			require.True(t, lines.Scan())
			dataLine = lines.Text()
			break
		}
	}
	require.NotEmpty(t, eventLine)
	assert.Contains(t, dataLine, `"id":"r1"`)
	assert.Contains(t, dataLine, `"status":"APPROVED"`)
}

func TestEventsStream_RequiresToken(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	rec := srv.do(t, http.MethodGet, "/api/v1/events", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
