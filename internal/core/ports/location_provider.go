package ports

import (
	"context"
	"errors"

	"driverhub/internal/core/domain/model/kernel"
)

// ErrLocationPermissionDenied is returned by a LocationProvider when the
// device refuses location access. The session keeps running; only location
// reporting is degraded.
var ErrLocationPermissionDenied = errors.New("location permission denied")

// LocationProvider abstracts the device location API: a black box that
// produces a coordinate sample on demand. Samples may fail transiently
// (no signal) or permanently (permission revoked); the caller decides how
// to react.
type LocationProvider interface {
	// CurrentLocation returns the device's current position.
	CurrentLocation(ctx context.Context) (kernel.Location, error)
}
