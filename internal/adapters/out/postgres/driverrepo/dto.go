// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. This package implements the repository pattern for the
// driver domain aggregate, handling the conversion between domain entities and
// database representations.
package driverrepo

import (
	"driverhub/internal/core/domain/model/driver"
	"driverhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver profiles.
// The availability flag is indexed so dispatch-side reads over online drivers
// stay cheap.
type DriverDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	IsAvailable     bool     `gorm:"index"`
	LocationLat     *float64 `gorm:"type:double precision"`
	LocationLon     *float64 `gorm:"type:double precision"`
	TotalDeliveries int
	Rating          float64
}

// TableName specifies the database table name for driver entities.
// Overrides GORM's default naming convention to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
// The optional last-reported location maps to a nullable coordinate pair.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var lat, lon *float64
	if loc := aggregate.Location(); loc != nil {
		latVal, lonVal := loc.Latitude(), loc.Longitude()
		lat, lon = &latVal, &lonVal
	}

	return DriverDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		IsAvailable:     aggregate.IsAvailable(),
		LocationLat:     lat,
		LocationLon:     lon,
		TotalDeliveries: aggregate.TotalDeliveries(),
		Rating:          aggregate.Rating(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate using
// RestoreDriver, so the stored values pass the structural invariants.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.LocationLat != nil && dto.LocationLon != nil {
		loc, locErr := kernel.NewLocation(*dto.LocationLat, *dto.LocationLon)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return driver.RestoreDriver(id, dto.Name, dto.IsAvailable, location, dto.TotalDeliveries, dto.Rating)
}
