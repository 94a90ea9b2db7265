package queries

import (
	"context"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the claimable order feed from the
// database. Uses direct SQL for read performance; the aggregates are not
// involved, and no lock is taken: claim arbitration happens at accept time,
// not at read time.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for feed queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all ready, unclaimed orders.
// Results are sorted by creation time ascending, oldest order first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feed := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_phone,
			address_line,
			total,
			created_at
		FROM orders
		WHERE status = ? AND driver_id IS NULL
		ORDER BY created_at ASC
	`, order.Ready).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetAvailableOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&entry.CustomerName,
			&entry.CustomerPhone,
			&entry.AddressLine,
			&entry.Total,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = orderID

		feed = append(feed, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}
