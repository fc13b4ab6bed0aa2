package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the classes of failure reported by the server.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("server error")
)

// Error represents a failed request to the anaconda.org API.
type Error struct {
	Method     string // HTTP method of the failed request
	URL        string // Request URL
	StatusCode int    // Zero when no response was received
	Message    string // Server supplied message, if any
	Cause      error  // The underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, msg)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, msg)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's status class.
func (e *Error) Is(target error) bool {
	return classify(e.StatusCode) == target
}

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == 0, status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}
