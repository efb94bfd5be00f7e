package commands_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T, email, phone string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand("Jane Doe", "Laptop", 2, decimal.RequireFromString("999.99"), email, phone)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t, "jane@example.com", "")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	dispatcher := new(MockDispatcher)
	var dispatched notification.Event
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(assignIDOnAdd).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("notification.Event")).
			Run(func(args mock.Arguments) { dispatched = args.Get(1).(notification.Event) }).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, dispatcher, fixedClock(fixedAt), discard)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, created.ID().Validate())
	assert.Equal(t, order.Created, created.Status())
	assert.Equal(t, fixedAt, created.CreatedAt())
	assert.Equal(t, fixedAt, created.UpdatedAt())
	assert.Equal(t, "1999.98", created.TotalValue().String())

	assert.Equal(t, notification.OrderCreated, dispatched.Type())
	assert.True(t, dispatched.OrderID().IsEqual(created.ID()))
	assert.Equal(t, "jane@example.com", dispatched.CustomerEmail())
	assert.Empty(t, dispatched.CustomerPhone())
	_, hasPrevious := dispatched.PreviousStatus()
	assert.False(t, hasPrevious)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	dispatcher := new(MockDispatcher)
	h := commands.NewCreateOrderCommandHandler(factory, dispatcher, nil, discard)

	created, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	dispatcher := new(MockDispatcher)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, dispatcher, fixedClock(fixedAt), discard)
	_, err := h.Handle(ctx, newCreateCommand(t, "", ""))

	require.ErrorContains(t, err, "begin error")
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	dispatcher := new(MockDispatcher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, dispatcher, fixedClock(fixedAt), discard)
	_, err := h.Handle(ctx, newCreateCommand(t, "jane@example.com", ""))

	require.ErrorContains(t, err, "add order: add error")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitErrorDoesNotDispatch(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	dispatcher := new(MockDispatcher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(assignIDOnAdd).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, dispatcher, fixedClock(fixedAt), discard)
	created, err := h.Handle(ctx, newCreateCommand(t, "jane@example.com", ""))

	require.ErrorContains(t, err, "commit error")
	assert.Nil(t, created)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}
