package commands

import (
	"context"
	"errors"
	"time"

	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler finishes the driver's active delivery.
//
// The terminal order write and the driver's delivery counter increment share
// one unit of work: both commit or neither does, so the driver's earnings
// history never disagrees with the order table.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the active order delivered, stamps the completion time,
// increments the driver's delivery counter, and commits both writes
// atomically. Like the other transitions it fails with
// order.ErrInvalidTransition unless the order is in_transit.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) (*order.Order, error) {
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
	driverRepo := uow.DriverRepository()

	active, err := ordersRepo.GetActiveByDriver(ctx, command.DriverID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, err
	}

	if err = active.MarkDelivered(time.Now()); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, active); err != nil {
		return nil, err
	}

	aggregate, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return nil, err
	}

	aggregate.RecordDelivery()

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return active, nil
}
