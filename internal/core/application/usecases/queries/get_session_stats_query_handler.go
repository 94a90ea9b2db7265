package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetSessionStatsQueryHandler computes a driver's session statistics with
// direct SQL: the commission sum over today's delivered orders plus the
// lifetime delivery count and rating from the driver profile.
//
// "Today" starts at local midnight in the server's time zone; a delivery
// completed at 23:59 counts until the day rolls over.
type GetSessionStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetSessionStatsQueryHandler creates a handler for statistics queries.
// Requires a GORM database connection for query execution.
func NewGetSessionStatsQueryHandler(db *gorm.DB) GetSessionStatsQueryHandler {
	return GetSessionStatsQueryHandler{db: db}
}

// Handle executes the statistics query for one driver. Returns an error
// matching errs.ErrObjectNotFound when the driver profile does not exist.
func (h GetSessionStatsQueryHandler) Handle(
	ctx context.Context,
	query GetSessionStatsQuery,
) (GetSessionStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionStatsQueryResponse{}, err
	}

	var response GetSessionStatsQueryResponse

	err := h.db.WithContext(ctx).Raw(`
		SELECT total_deliveries, rating
		FROM drivers
		WHERE id = ?
	`, query.DriverID().Bytes()).Row().Scan(&response.TotalDeliveries, &response.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetSessionStatsQueryResponse{},
				errs.NewObjectNotFoundError("driverID", query.DriverID())
		}
		return GetSessionStatsQueryResponse{}, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var totalToday decimal.Decimal
	err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE driver_id = ? AND status = ? AND delivered_at >= ?
	`, query.DriverID().Bytes(), order.Delivered, startOfDay).
		Row().
		Scan(&totalToday, &response.DeliveriesToday)
	if err != nil {
		return GetSessionStatsQueryResponse{}, err
	}

	response.EarningsToday = totalToday.Mul(DriverCommissionRate)

	return response, nil
}
