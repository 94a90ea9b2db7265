package commands

import (
	"context"
	"errors"

	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"
)

// StartDeliveryCommandHandler advances the driver's active order from
// picked_up to in_transit.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartDeliveryCommandHandler creates a handler for the transit transition.
func NewStartDeliveryCommandHandler(uowFactory OrderUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the driver's active order, applies the transit transition and
// persists the result.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, command StartDeliveryCommand) (*order.Order, error) {
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

	if err = active.StartDelivery(); err != nil {
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
