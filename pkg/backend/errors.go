package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is a non-2xx response from the backend API. It carries
// the upstream status code and body text so callers can branch on
// status (the detail lookup maps 404 into a friendly not-found page).
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// ServiceUnavailableError is a transport-level failure: connection
// refused, DNS failure, or timeout. Always surfaced as 503.
type ServiceUnavailableError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("backend service unavailable (%s): %v", e.Op, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ServiceUnavailableError) Unwrap() error {
	return e.Err
}

// ValidationError is a rejected input, checked before any upstream
// call. Surfaced as 400.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsUpstream extracts an UpstreamError from an error chain.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	ue, ok := AsUpstream(err)
	return ok && ue.StatusCode == http.StatusNotFound
}

// StatusFor maps an error to the HTTP status the caller should answer
// with: the upstream status for UpstreamError, 503 for transport
// failures, 400 for validation failures, 500 otherwise.
func StatusFor(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	var se *ServiceUnavailableError
	if errors.As(err, &se) {
		return http.StatusServiceUnavailable
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
