// Package commands contains the operations that change order state.
// Each handler validates its command, persists inside a unit of work, commits,
// and only then hands a notification event to the dispatcher.
package commands

import (
	"context"
	"time"

	"orderflow/internal/core/ports"
)

// Unit of work interfaces narrowed to what command handlers use.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory gives access to the order repository inside a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a new OrderUoW per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Clock returns the current time. Handlers stamp orders with it.
type Clock func() time.Time

// SystemClock is UTC wall time truncated to the microsecond precision of
// PostgreSQL timestamps, so a returned order equals its stored form.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
