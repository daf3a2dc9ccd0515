package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers. Transport converts them to HTTP
// status codes at the boundary; nothing below the transport retries or
// swallows them.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// ValidationError reports malformed or incomplete input detected while
// deserializing a request body.
type ValidationError struct {
	Reason string
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

// ConnectionError marks a failure to reach the persistence layer. It is the
// only error kind the persistence retry policy considers retryable.
type ConnectionError struct {
	Err error
}

func NewConnection(err error) *ConnectionError {
	return &ConnectionError{Err: err}
}

func (e *ConnectionError) Error() string {
	return "database connection error: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnection reports whether err is a database connection error.
func IsConnection(err error) bool {
	var ce *ConnectionError

	return errors.As(err, &ce)
}
