package driver

import (
	"errors"
	"fmt"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/errs"
)

const (
	// RatingMin is the lowest possible driver rating.
	RatingMin = 0.0
	// RatingMax is the highest possible driver rating, also the rating a new
	// driver starts with.
	RatingMax = 5.0
)

// ErrDriverIsNotConstructed is returned when a Driver instance was not created
// through the NewDriver or RestoreDriver factory methods.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")

// Driver is the aggregate root for a courier's persistent profile: who they
// are, whether they are currently taking orders, their last reported position,
// and their lifetime delivery record.
//
// Driver maintains these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - totalDeliveries never decreases and is never negative
//   - rating stays within [RatingMin, RatingMax]
//   - location, when present, is a validated coordinate pair
//
// Availability and location are mutated by the session's availability
// controller and location reporter; the delivery count is incremented by
// delivery completion only.
type Driver struct {
	id kernel.UUID

	name string

	// isAvailable is the online flag. While true the driver appears available
	// for dispatch and the session's location reporter is armed.
	isAvailable bool

	// location is the last position reported by the device, nil before the
	// first report.
	location *kernel.Location

	totalDeliveries int

	rating float64

	isConstructed bool
}

// NewDriver creates a driver profile for a newly registered courier: offline,
// no reported location, no deliveries, and the starting rating.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	d := &Driver{
		rating:        RatingMax,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver profile from persistence, enforcing the
// structural invariants on the stored values.
func RestoreDriver(
	id kernel.UUID,
	name string,
	isAvailable bool,
	location *kernel.Location,
	totalDeliveries int,
	rating float64,
) (*Driver, error) {
	d := &Driver{
		isAvailable:   isAvailable,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setLocation(location),
		d.setTotalDeliveries(totalDeliveries),
		d.setRating(rating),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Driver instance was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}

	return nil
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// IsAvailable reports whether the driver is online.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// Location returns the last reported position, or nil before the first report.
func (d *Driver) Location() *kernel.Location {
	return d.location
}

// TotalDeliveries returns the lifetime completed delivery count.
func (d *Driver) TotalDeliveries() int {
	return d.totalDeliveries
}

// Rating returns the driver's current rating.
func (d *Driver) Rating() float64 {
	return d.rating
}

// SetAvailability sets the online flag and reports whether the value changed.
// Callers use the changed flag to keep the operation idempotent: when the
// requested state equals the current state there is nothing to persist and no
// reporter to start or stop.
func (d *Driver) SetAvailability(online bool) bool {
	if d.isAvailable == online {
		return false
	}

	d.isAvailable = online
	return true
}

// UpdateLocation records a position sample reported by the device.
func (d *Driver) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	d.location = &location
	return nil
}

// RecordDelivery increments the lifetime delivery count by one. Called on the
// terminal transition of the active order.
func (d *Driver) RecordDelivery() {
	d.totalDeliveries++
}

// setID validates and sets the driver's unique identifier.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setName validates and sets the driver's name.
func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

// setLocation validates and sets the optional stored location.
func (d *Driver) setLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	d.location = location
	return nil
}

// setTotalDeliveries validates and sets the delivery count.
func (d *Driver) setTotalDeliveries(totalDeliveries int) error {
	if totalDeliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDeliveries is invalid",
			fmt.Errorf("%d is negative", totalDeliveries))
	}
	d.totalDeliveries = totalDeliveries
	return nil
}

// setRating validates and sets the rating.
func (d *Driver) setRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	d.rating = rating
	return nil
}
