// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and driver assignment are indexed because the feed query filters on
// both, and created_at because the feed sorts on it.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	Status        int        `gorm:"index"`
	CustomerName  string
	CustomerPhone string
	AddressLine   string
	AddressLat    *float64        `gorm:"type:double precision"`
	AddressLon    *float64        `gorm:"type:double precision"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt     time.Time       `gorm:"index"`
	DeliveredAt   *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional driver assignment and the
// optional delivery timestamp.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var lat, lon *float64
	if loc := aggregate.DeliveryAddress().Location; loc != nil {
		latVal, lonVal := loc.Latitude(), loc.Longitude()
		lat, lon = &latVal, &lonVal
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		DriverID:      driverID,
		Status:        int(aggregate.Status()),
		CustomerName:  aggregate.Customer().Name,
		CustomerPhone: aggregate.Customer().Phone,
		AddressLine:   aggregate.DeliveryAddress().Line,
		AddressLat:    lat,
		AddressLon:    lon,
		Total:         aggregate.Total(),
		CreatedAt:     aggregate.CreatedAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, driver assignment and
// delivery timestamp using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	address := order.Address{Line: dto.AddressLine}
	if dto.AddressLat != nil && dto.AddressLon != nil {
		loc, locErr := kernel.NewLocation(*dto.AddressLat, *dto.AddressLon)
		if locErr != nil {
			return nil, locErr
		}
		address.Location = &loc
	}

	return order.RestoreOrder(
		id,
		driverID,
		order.Status(dto.Status),
		order.Customer{Name: dto.CustomerName, Phone: dto.CustomerPhone},
		address,
		dto.Total,
		dto.CreatedAt,
		dto.DeliveredAt,
	)
}
