package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrIDAlreadyAssigned is returned by AssignID when the order already has an identity.
	ErrIDAlreadyAssigned = errors.New("order id is already assigned")
)

// InvalidTransitionError carries the rejected (From, To) pair.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
