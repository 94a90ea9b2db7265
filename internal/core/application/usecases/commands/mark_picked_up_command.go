package commands

import (
	"errors"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand confirms the driver collected the active order from
// the restaurant.
type MarkPickedUpCommand struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to mark the driver's active order
// as picked up.
func NewMarkPickedUpCommand(driverID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := driverID.Validate(); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return MarkPickedUpCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver whose active order is being advanced.
func (c MarkPickedUpCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}
