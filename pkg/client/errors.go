package client

import (
	"errors"
	"fmt"
)

// TransportError is a network-level failure: the request never produced a response
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// LogicalError is a 2xx response whose envelope has its error flag set
type LogicalError struct {
	Method  string
	Path    string
	Message string
}

func (e *LogicalError) Error() string {
	return e.Message
}

// Reason classifies err as "transport", "status", "logical" or "other"
func Reason(err error) string {
	var (
		transport *TransportError
		status    *StatusError
		logical   *LogicalError
	)
	switch {
	case errors.As(err, &logical):
		return "logical"
	case errors.As(err, &status):
		return "status"
	case errors.As(err, &transport):
		return "transport"
	default:
		return "other"
	}
}

// IsLogical reports whether err is a logical failure carried by a 2xx envelope
func IsLogical(err error) bool {
	var logical *LogicalError
	return errors.As(err, &logical)
}
