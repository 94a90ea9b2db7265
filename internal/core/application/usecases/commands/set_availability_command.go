package commands

import (
	"errors"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand requests that a driver's online flag be set to the
// given value. The flag is persisted before the caller starts or stops the
// location reporter, so a failed write never leaves the session claiming to
// be online.
type SetAvailabilityCommand struct {
	driverID kernel.UUID
	online   bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates a command to toggle a driver's availability.
func NewSetAvailabilityCommand(driverID kernel.UUID, online bool) (SetAvailabilityCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return SetAvailabilityCommand{
		driverID: driverID,
		online:   online,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver whose availability is being set.
func (c SetAvailabilityCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Online returns the requested availability state.
func (c SetAvailabilityCommand) Online() bool {
	return c.online
}

// Validate ensures the command was created through the constructor.
func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}
