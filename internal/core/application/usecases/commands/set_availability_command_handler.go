package commands

import (
	"context"
)

// SetAvailabilityCommandHandler persists a driver's online flag.
// The write is idempotent: when the stored flag already matches the request
// nothing is written and the handler returns successfully.
type SetAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewSetAvailabilityCommandHandler creates a handler for availability toggling.
func NewSetAvailabilityCommandHandler(uowFactory DriverUoWFactory) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the driver profile, applies the requested availability, and
// persists the profile when the flag actually changed. On persistence failure
// nothing is committed and the error is surfaced to the caller; the session
// must not consider the driver online.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, command SetAvailabilityCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if !aggregate.SetAvailability(command.Online()) {
		return nil
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
