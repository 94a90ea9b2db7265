package commands

import (
	"errors"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand signals that the driver left the restaurant and is
// heading to the customer.
type StartDeliveryCommand struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to move the driver's active
// order in transit.
func NewStartDeliveryCommand(driverID kernel.UUID) (StartDeliveryCommand, error) {
	if err := driverID.Validate(); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver whose active order is being advanced.
func (c StartDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}
