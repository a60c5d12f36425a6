package auth

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrBusinessIDRequired = errors.New("business ID is required")
	ErrUserIDRequired     = errors.New("user ID is required")
)
