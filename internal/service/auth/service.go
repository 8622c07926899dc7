package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	worker.WorkerRepository
	jwt.Service
}

func NewAuthService(workerRepository worker.WorkerRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		WorkerRepository: workerRepository,
		Service:          jwtService,
	}
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	workerData, err := a.FindByExternalID(ctx, req.ExternalID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to get worker by external id: %w", err)
	}
	if workerData == nil || !workerData.IsActive || !workerData.CheckPassword(req.Password) {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresIn, err := a.GenerateAccessToken(jwt.WorkerClaims{
		WorkerID:   workerData.ID,
		ExternalID: workerData.ExternalID,
		IsManager:  workerData.IsManager,
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.InfoContext(ctx, "worker logged in", "worker_id", workerData.ID)

	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresIn,
		Worker: auth.WorkerSummary{
			ID:           workerData.ID,
			Name:         workerData.Name,
			ExternalID:   workerData.ExternalID,
			IsManager:    workerData.IsManager,
			DepartmentID: workerData.DepartmentID,
		},
	}, nil
}
