package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	db  Pinger
	now func() time.Time
}

func NewHealthHandler(db Pinger) HealthHandler {
	return &healthHandlerImpl{db: db, now: time.Now}
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health reports service and database status.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "error", err)
		response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unavailable", nil)
		return
	}

	response.Success(w, healthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
