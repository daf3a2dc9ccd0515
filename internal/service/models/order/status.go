package order

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusOpen      Status = "Open"
	StatusClosed    Status = "Closed"
	StatusCancelled Status = "Cancelled"
	StatusRefunded  Status = "Refunded"
)

var (
	// ErrInvalidStatus is returned when a status value is not one of the
	// known lifecycle states.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrAlreadyCancelled is returned when cancelling an order that is
	// already cancelled.
	ErrAlreadyCancelled = errors.New("order is already cancelled")
)

// ParseStatus converts a raw string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed, StatusCancelled, StatusRefunded:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// Cancel returns the status after a cancel transition.
func (s Status) Cancel() (Status, error) {
	if s == StatusCancelled {
		return s, ErrAlreadyCancelled
	}

	return StatusCancelled, nil
}
