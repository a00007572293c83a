package exception

import (
	"errors"
	"fmt"
)

// ApplicationError is the error type that crosses service boundaries.
// StatusCode decides the HTTP status the transport layer responds with;
// Cause keeps the underlying failure for logs without leaking it to
// clients.
type ApplicationError struct {
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Message == targetErr.Message &&
		e.StatusCode == targetErr.StatusCode
}

// ErrorCode returns the HTTP status for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}
