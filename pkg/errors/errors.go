// Package errors defines the application error taxonomy. Every failure that
// reaches a client is an AppError; the Internal field keeps the underlying
// cause for logs without exposing it on the wire.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError pairs a stable client-facing code with an HTTP status.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Internal != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	default:
		return e.Message
	}
}

// Unwrap lets errors.Is and errors.As reach the wrapped cause.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// WithInternal attaches a cause without mutating the shared sentinel.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Internal = err
	return &clone
}

var (
	ErrNotFound = New("NOT_FOUND", "Resource not found", http.StatusNotFound)

	ErrBadRequest = New("BAD_REQUEST", "Invalid request", http.StatusBadRequest)

	// ErrStoreUnavailable marks a transient persistence failure. The service
	// layer never retries; the caller or trigger decides what to do.
	ErrStoreUnavailable = New("STORE_UNAVAILABLE", "Storage backend unavailable", http.StatusServiceUnavailable)

	ErrInternalServer = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)

	ErrRateLimit = New("RATE_LIMIT_EXCEEDED", "Too many requests, please slow down", http.StatusTooManyRequests)
)

// New constructs an AppError from its parts.
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// NewBadRequest is the common case of a 400 with a specific message.
func NewBadRequest(message string) *AppError {
	return New(ErrBadRequest.Code, message, ErrBadRequest.StatusCode)
}

// Wrap converts an arbitrary error into a loggable 500-class AppError.
func Wrap(err error, message string) *AppError {
	return New("INTERNAL_ERROR", message, http.StatusInternalServerError).WithInternal(err)
}

// FromError normalises any error into an AppError. Non-AppError values become
// ErrInternalServer with the original kept as the internal cause.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.WithInternal(err)
}
