package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies status transitions and announces
// each successful one with the previous status attached.
//
// The order is read with GetForUpdate, so two concurrent transitions of one
// order serialise on the row lock and the second one sees the first's result.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, dispatcher, nil, logger)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Completed)
//
//	updated, err := handler.Handle(ctx, cmd)
//	var invalid *order.InvalidTransitionError
//	switch {
//	case errors.As(err, &invalid):
//	    // the order is already CANCELLED or COMPLETED
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order id
//	case err != nil:
//	    return err
//	}
//	// updated.Status() == order.Completed
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	clock      Clock
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock Clock,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger.With("component", "ChangeOrderStatusCommandHandler"),
	}
}

// Handle returns errs.ObjectNotFoundError for an unknown id and
// *order.InvalidTransitionError for an illegal move; neither mutates anything.
// On success it commits, dispatches ORDER_STATUS_CHANGED and returns the
// updated order.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous, err := current.TransitionTo(cmd.Status(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	event, err := notification.NewOrderStatusChangedEvent(current, previous)
	if err != nil {
		h.logger.ErrorContext(ctx, "cannot build notification event", "order_id", current.ID().String(), "error", err)
		return current, nil
	}
	h.dispatcher.Dispatch(ctx, event)

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", current.ID().String(),
		"from", previous.String(),
		"to", current.Status().String(),
	)
	return current, nil
}
