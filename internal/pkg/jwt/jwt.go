package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var ErrMissingClaims = errors.New("token claims are missing or invalid")

// WorkerClaims is the identity carried by an access token.
type WorkerClaims struct {
	WorkerID   string
	ExternalID string
	IsManager  bool
}

type Service interface {
	GenerateAccessToken(claims WorkerClaims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(claims WorkerClaims) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"worker_id":   claims.WorkerID,
		"external_id": claims.ExternalID,
		"is_manager":  claims.IsManager,
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the worker identity verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (WorkerClaims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return WorkerClaims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	workerID, ok := claims["worker_id"].(string)
	if !ok || workerID == "" {
		return WorkerClaims{}, ErrMissingClaims
	}
	externalID, _ := claims["external_id"].(string)
	isManager, _ := claims["is_manager"].(bool)

	return WorkerClaims{
		WorkerID:   workerID,
		ExternalID: externalID,
		IsManager:  isManager,
	}, nil
}
