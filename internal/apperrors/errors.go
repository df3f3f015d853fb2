package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrUnauthorized indicates that the bearer token was missing, expired or rejected.
// Callers are expected to map this to a sign-out-and-redirect flow.
var ErrUnauthorized = errors.New("unauthorized")

// ErrValidation indicates that a server payload failed validation checks.
var ErrValidation = errors.New("validation error")

// APIError carries the HTTP status and server-provided message of a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}
