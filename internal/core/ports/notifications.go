package ports

import (
	"context"

	"orderflow/internal/core/domain/model/notification"
)

// NotificationChannel delivers events through one transport.
//
// Send makes exactly one attempt. A failed attempt is reported as
// *notification.TransientError or *notification.PermanentError; retrying is
// the caller's job.
type NotificationChannel interface {
	Name() string
	Applicable(event notification.Event) bool
	Send(ctx context.Context, event notification.Event) error
}

// NotificationDispatcher fans an event out to every channel. Dispatch returns
// without waiting for delivery and never reports delivery failures.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event notification.Event)
}
