package commands

import (
	"context"
	"errors"

	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"
)

// ErrNoActiveOrder is returned by transition handlers when the driver has no
// active order to advance.
var ErrNoActiveOrder = errors.New("driver has no active order")

// MarkPickedUpCommandHandler advances the driver's active order from
// assigned to picked_up.
type MarkPickedUpCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkPickedUpCommandHandler creates a handler for the pickup transition.
func NewMarkPickedUpCommandHandler(uowFactory OrderUoWFactory) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the driver's active order, applies the pickup transition and
// persists the result. A transition attempted from any status other than
// assigned fails with order.ErrInvalidTransition and nothing is written.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, command MarkPickedUpCommand) (*order.Order, error) {
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

	active, err := ordersRepo.GetActiveByDriver(ctx, command.DriverID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, err
	}

	if err = active.MarkPickedUp(); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, active); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return active, nil
}
