package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors for the capability registry.
var (
	ErrNotFound      = errors.New("node not found")
	ErrAlreadyExists = errors.New("node already registered")
	ErrEmptyName     = errors.New("node name is empty")
)

// UserError reports invalid user input: a missing required binary property,
// an empty URL, or user-supplied JSON that does not parse. These surface to
// the workflow author, not to operations.
type UserError struct {
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *UserError) Unwrap() error { return e.Cause }

// Userf creates a UserError with a formatted message. A trailing %w verb is
// not supported; wrap causes via UserError.Cause instead.
func Userf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// APIError reports an upstream HTTP failure, carrying the status code when
// one was received.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return "upstream request failed: " + e.Message
}
