package session

import "errors"

var (
	// ErrUnauthorized wraps every verification failure so callers can answer with one message.
	ErrUnauthorized = errors.New("invalid or expired token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
