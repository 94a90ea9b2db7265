package commands

import (
	"context"
	"errors"

	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"
)

// ErrActiveOrderExists is returned when a driver who already holds an active
// order tries to accept another one. The session hides the feed in that
// state, but the handler refuses regardless.
var ErrActiveOrderExists = errors.New("driver already has an active order")

// AcceptOrderCommandHandler claims a ready order for a driver.
//
// The claim is a single conditional write evaluated atomically by the store:
// when two drivers race for the same order, exactly one claim applies and the
// other receives an error matching errs.ErrConflict. The caller must then
// refresh its feed snapshot and tell the user the order is gone, never treat
// the conflict as success.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory)
//	cmd, _ := NewAcceptOrderCommand(orderID, driverID)
//	accepted, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // order was claimed by another driver; refresh the feed
//	case errors.Is(err, ErrActiveOrderExists):
//	    // finish the current delivery first
//	case err != nil:
//	    // persistence failure; retry manually
//	default:
//	    // accepted is the driver's new active order
//	}
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle refuses drivers that already hold an active order, performs the
// conditional claim, and on success re-fetches the complete order record
// (with customer and address data) to install as the active order.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	_, err := ordersRepo.GetActiveByDriver(ctx, command.DriverID())
	if err == nil {
		return nil, ErrActiveOrderExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = ordersRepo.Claim(ctx, command.OrderID(), command.DriverID()); err != nil {
		return nil, err
	}

	accepted, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return accepted, nil
}
