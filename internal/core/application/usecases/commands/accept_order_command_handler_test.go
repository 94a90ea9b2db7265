package commands_test

import (
	"context"
	"errors"
	"testing"

	"driverhub/internal/core/application/usecases/commands"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/core/ports"
	"driverhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAcceptOrderRepository struct{ mock.Mock }

func (m *MockAcceptOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockAcceptOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockAcceptOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAcceptOrderRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAcceptOrderRepository) Claim(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) error {
	args := m.Called(ctx, orderID, driverID)
	return args.Error(0)
}

type MockAcceptUoW struct{ mock.Mock }

func (m *MockAcceptUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAcceptUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAcceptUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAcceptUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockAcceptUoWFactory struct{ mock.Mock }

func (m *MockAcceptUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	claimed := newActiveOrder(t, driverID, order.Assigned)
	cmd, err := commands.NewAcceptOrderCommand(claimed.ID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockAcceptOrderRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByDriver", ctx, driverID).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Claim", ctx, claimed.ID(), driverID).Return(nil).Once(),
		orderRepo.On("Get", ctx, claimed.ID()).Return(claimed, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	accepted, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Equal(t, order.Assigned, accepted.Status())
	require.NotNil(t, accepted.Driver())
	assert.Equal(t, driverID, *accepted.Driver())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.AcceptOrderCommand

	factory := new(MockAcceptUoWFactory)
	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAcceptOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptOrderCommandHandler_Handle_ActiveOrderExists(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	active := newActiveOrder(t, driverID, order.InTransit)
	target := newReadyOrder(t)
	cmd, err := commands.NewAcceptOrderCommand(target.ID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockAcceptOrderRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByDriver", ctx, driverID).Return(active, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrActiveOrderExists)
	orderRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_ClaimConflict(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	target := newReadyOrder(t)
	cmd, err := commands.NewAcceptOrderCommand(target.ID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockAcceptOrderRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByDriver", ctx, driverID).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Claim", ctx, target.ID(), driverID).
			Return(errs.NewConflictError("order", target.ID().String())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(orderID, driverID)
	require.NoError(t, err)

	orderRepo := new(MockAcceptOrderRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByDriver", ctx, driverID).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Claim", ctx, orderID, driverID).
			Return(errs.NewObjectNotFoundError("orderID", orderID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptOrderCommandHandler_Handle_GetActiveError(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(kernel.NewUUID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockAcceptOrderRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByDriver", ctx, driverID).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestAcceptOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	claimed := newActiveOrder(t, driverID, order.Assigned)
	cmd, err := commands.NewAcceptOrderCommand(claimed.ID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockAcceptOrderRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByDriver", ctx, driverID).Return(nil, errs.ErrObjectNotFound).Once(),
		orderRepo.On("Claim", ctx, claimed.ID(), driverID).Return(nil).Once(),
		orderRepo.On("Get", ctx, claimed.ID()).Return(claimed, nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
