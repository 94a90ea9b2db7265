package commands

import (
	"context"
)

// ReportLocationCommandHandler writes a sampled position to the driver profile.
//
// A failure here is a single missed sample: the reporter logs it and the next
// scheduled tick proceeds. A sample already in flight when the reporter is
// disarmed is allowed to land; the reporter guarantees no further ticks are
// scheduled, not that the last write is rolled back.
type ReportLocationCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewReportLocationCommandHandler creates a handler for location samples.
func NewReportLocationCommandHandler(uowFactory DriverUoWFactory) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the driver profile, records the sample, and persists it.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) error {
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

	if err = aggregate.UpdateLocation(command.Location()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
