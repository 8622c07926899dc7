package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid ID number or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrManagerAccessRequired = errors.New("manager access required")
)
