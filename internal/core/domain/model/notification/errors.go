package notification

import (
	"errors"
	"fmt"
)

var (
	// ErrTransient is the sentinel for attempt failures that may succeed later.
	ErrTransient = errors.New("transient delivery failure")

	// ErrPermanent is the sentinel for attempt failures that will not.
	ErrPermanent = errors.New("permanent delivery failure")

	// ErrDeliveryFailed marks a delivery unit that ended without success.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

// TransientError is returned by a channel for connection errors, timeouts and
// 5xx responses.
type TransientError struct {
	Channel string
	Cause   error
}

func NewTransientError(channel string, cause error) *TransientError {
	return &TransientError{Channel: channel, Cause: cause}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransient, e.Channel, e.Cause)
}

// Unwrap exposes both the sentinel and the cause.
func (e *TransientError) Unwrap() []error {
	return []error{ErrTransient, e.Cause}
}

// PermanentError is returned by a channel for any other failed attempt.
type PermanentError struct {
	Channel string
	Cause   error
}

func NewPermanentError(channel string, cause error) *PermanentError {
	return &PermanentError{Channel: channel, Cause: cause}
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPermanent, e.Channel, e.Cause)
}

func (e *PermanentError) Unwrap() []error {
	return []error{ErrPermanent, e.Cause}
}

// IsTransient reports whether err is worth another attempt. Errors that carry
// no classification are treated as permanent.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// DeliveryError is the terminal outcome of a failed delivery unit. It is only
// logged and counted, never returned to order callers.
type DeliveryError struct {
	Channel  string
	Event    EventType
	Attempts int
	Cause    error
}

func NewDeliveryError(channel string, event EventType, attempts int, cause error) *DeliveryError {
	return &DeliveryError{Channel: channel, Event: event, Attempts: attempts, Cause: cause}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: channel %s, %s after %d attempt(s): %v",
		ErrDeliveryFailed, e.Channel, e.Event, e.Attempts, e.Cause)
}

func (e *DeliveryError) Unwrap() []error {
	return []error{ErrDeliveryFailed, e.Cause}
}
