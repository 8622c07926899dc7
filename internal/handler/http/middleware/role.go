package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

// RequireManager requires the is_manager claim and re-reads the worker, so a
// demoted or deactivated manager loses access before the token expires.
func RequireManager(workers worker.WorkerRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, r, auth.ErrInvalidToken)
				return
			}

			if !claims.IsManager {
				response.HandleError(w, r, auth.ErrManagerAccessRequired)
				return
			}

			current, err := workers.FindByID(r.Context(), claims.WorkerID)
			if err != nil {
				slog.ErrorContext(r.Context(), "RequireManager lookup failed", "worker_id", claims.WorkerID, "error", err)
				response.HandleError(w, r, err)
				return
			}
			if current == nil || !current.CanApprove() {
				response.HandleError(w, r, auth.ErrManagerAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
