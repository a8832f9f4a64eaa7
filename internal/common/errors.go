// Package common defines shared constants and sentinel errors used across
// client and server layers of Attendo. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (rejected before any network call).
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
	ErrAuthRequired       = errors.New("authentication required")

	// Location errors.
	ErrPermissionDenied = errors.New("location permission denied")
	ErrPositionTimeout  = errors.New("position fetch timed out")
)

// RequestError reports a non-2xx status from the backend that is not
// covered by a more specific sentinel.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: status %d", e.Status)
}
