package commands

import (
	"errors"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand carries one coordinate sample from the device to the
// driver profile. Issued by the location reporter on its fixed period while
// the driver is online.
type ReportLocationCommand struct {
	driverID kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to record a location sample.
func NewReportLocationCommand(driverID kernel.UUID, location kernel.Location) (ReportLocationCommand, error) {
	if err := errors.Join(driverID.Validate(), location.Validate()); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		driverID: driverID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the reporting driver.
func (c ReportLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the sampled position.
func (c ReportLocationCommand) Location() kernel.Location {
	return c.location
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}
