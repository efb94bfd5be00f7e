// Package ports declares the contracts between the orderflow core and its
// adapters: order persistence, the unit of work, and notification delivery.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add inserts a new order and assigns its identity through order.AssignID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update overwrites an existing order by id. A missing row is an
	// errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. A missing row is an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends, so concurrent transitions of one order serialise.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
