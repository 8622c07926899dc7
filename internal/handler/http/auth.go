package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/i18n"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, i18n.Localize(r.Context(), "invalid_request_format", "Invalid request format"), nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	// Call service
	result, err := a.authService.Authenticate(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "external_id", loginReq.ExternalID, "error", err)
		response.HandleError(w, r, err)
		return
	}

	slog.Info("Worker logged in", "worker_id", result.Worker.ID)
	response.SuccessWithMessage(w, i18n.Localize(r.Context(), "login_success", "Logged in successfully"), result)
}
