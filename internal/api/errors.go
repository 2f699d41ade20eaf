package api

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("taskflow backend unavailable")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("taskflow request timed out")

	// ErrInvalidResponse indicates a 2xx response whose body was not a JSON
	// envelope.
	ErrInvalidResponse = errors.New("invalid response body")
)

// TransportError is returned when no HTTP response was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is returned for a non-2xx response. Envelope is set when the
// body carried the backend's JSON error payload.
type HTTPError struct {
	StatusCode int
	Envelope   *Envelope
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Envelope != nil && e.Envelope.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Envelope.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// AppError is an application-level failure: a 2xx response whose envelope
// status is not 200.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// Message reduces any error from this package to the text shown to the
// user: the server-supplied message when there is one, otherwise fallback.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Envelope != nil && httpErr.Envelope.Message != "" {
		return httpErr.Envelope.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsCanceled reports whether err stems from the caller abandoning the
// request rather than from the backend.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func errorCode(err error) string {
	var httpErr *HTTPError
	var appErr *AppError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("HTTP_%d", httpErr.StatusCode)
	case errors.As(err, &appErr):
		return fmt.Sprintf("APP_%d", appErr.Status)
	default:
		return "UNKNOWN"
	}
}
