package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler persists new orders in CREATED status and
// announces them to the notification channels once the transaction commits.
// Delivery runs in the background and never affects the result.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, dispatcher, nil, logger)
//	cmd, _ := NewCreateOrderCommand("Jane Doe", "Laptop", 2, decimal.RequireFromString("999.99"), "jane@example.com", "")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.ID() is set; ORDER_CREATED is on its way to the email channel
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	clock      Clock
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler wires the handler. A nil clock means SystemClock.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle stores a CREATED order, commits, then dispatches ORDER_CREATED
// without waiting for delivery. The returned order carries its new identity.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		cmd.CustomerName(),
		cmd.ProductName(),
		cmd.Quantity(),
		cmd.Price(),
		cmd.Email(),
		cmd.Phone(),
		h.clock(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, fmt.Errorf("add order: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	event, err := notification.NewOrderCreatedEvent(created)
	if err != nil {
		h.logger.ErrorContext(ctx, "cannot build notification event", "order_id", created.ID().String(), "error", err)
		return created, nil
	}
	h.dispatcher.Dispatch(ctx, event)

	h.logger.InfoContext(ctx, "order created", "order_id", created.ID().String())
	return created, nil
}
