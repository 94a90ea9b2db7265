// Package ports defines the contracts between the application core and
// infrastructure: repositories over the record store, the unit of work, and
// the device location collaborator. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"

	"driverhub/internal/core/domain/model/driver"
	"driverhub/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver profiles.
type DriverRepository interface {
	// Get retrieves a driver profile by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// Update persists changes to an existing driver profile.
	// The driver must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *driver.Driver) error
}
