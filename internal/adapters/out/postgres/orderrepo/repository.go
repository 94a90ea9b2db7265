package orderrepo

import (
	"context"
	"errors"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// activeStatuses are the statuses of a claimed, in-progress order.
var activeStatuses = []int{int(order.Assigned), int(order.PickedUp), int(order.InTransit)}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("DriverID", "Status", "CustomerName", "CustomerPhone",
			"AddressLine", "AddressLat", "AddressLon", "Total", "CreatedAt", "DeliveredAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByDriver retrieves the driver's single in-progress order.
func (r *GormOrderRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "driver_id = ? AND status IN ?", driverID.Bytes(), activeStatuses).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active order for driver", driverID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim atomically assigns a ready, unassigned order to the driver.
//
// The precondition lives in the WHERE clause of a single UPDATE, so the
// database serializes racing claims: the first write matches and moves the
// order to assigned, every later one matches zero rows. A zero-row result is
// disambiguated with a follow-up read: the order either never existed or
// was already claimed.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND driver_id IS NULL AND status = ?", orderID.Bytes(), int(order.Ready)).
		Updates(map[string]any{
			"driver_id": driverID.Bytes(),
			"status":    int(order.Assigned),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto OrderDTO
		err := r.db.WithContext(ctx).First(&dto, "id = ?", orderID.Bytes()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		if err != nil {
			return err
		}
		return errs.NewConflictError("order", orderID.String())
	}

	return nil
}
