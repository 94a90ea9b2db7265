package ports

import (
	"context"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates as
// seen by the driver session.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// the customer and address data joined onto it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveByDriver retrieves the driver's single order in an active
	// status (assigned, picked up, or in transit). Returns an
	// errs.ObjectNotFoundError when the driver has no active order.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error)

	// Claim atomically assigns a ready, unassigned order to the driver.
	// The precondition (driver_id IS NULL and status ready) is evaluated by
	// the store in the same write, not checked beforehand by the caller, so
	// two racing claims resolve to exactly one winner. The loser receives an
	// error matching errs.ErrConflict; a missing order yields
	// errs.ErrObjectNotFound.
	Claim(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) error
}
