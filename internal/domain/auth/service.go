package auth

import (
	"context"
)

type AuthService interface {
	// Authenticate checks the external ID and password and issues an access token
	Authenticate(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
