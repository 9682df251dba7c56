package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the service, either through a non-2xx
// status or through an {"error": "..."} payload.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// TransportError wraps network level failures (connection refused, timeouts,
// undecodable bodies).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsTransport reports whether err happened before the service answered.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message returns the human readable part of err for notifications.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "server unreachable: " + te.Err.Error()
	}
	return err.Error()
}
