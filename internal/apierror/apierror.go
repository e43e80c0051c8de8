// Package apierror provides standardized error response structures for the API
// and the error kinds that services return. All errors returned to clients go
// through this package so internal details (SQL errors, stack traces) never leak.
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Internal is the body of every 500. It names the request so the failure
// can be found in the logs without exposing its cause.
func Internal(requestID string) *APIError {
	return &APIError{Detail: "Internal server error", RequestID: requestID}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

// ── Error kinds ──────────────────────────────────────────────────────────────
// Services wrap these with fmt.Errorf("%w: ...") so handlers can classify the
// failure with errors.Is while keeping a specific message.

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyReturned   = errors.New("item already returned")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)

// Status maps an error to its HTTP status. Anything unclassified is a server error.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrAlreadyReturned), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// IsClassified reports whether err carries one of the known kinds and can be
// shown to the caller verbatim.
func IsClassified(err error) bool {
	return Status(err) != http.StatusInternalServerError
}
