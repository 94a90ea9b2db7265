package queries

import (
	"errors"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetSessionStatsQueryIsNotConstructed = errors.New(
	"GetSessionStatsQuery must be created via NewGetSessionStatsQuery constructor",
)

// DriverCommissionRate is the share of an order's total the driver earns for
// delivering it.
var DriverCommissionRate = decimal.NewFromFloat(0.10)

// GetSessionStatsQuery retrieves a driver's session statistics: today's
// earnings and delivery count, plus the lifetime delivery total from the
// driver profile.
type GetSessionStatsQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSessionStatsQuery creates a query for one driver's statistics.
func NewGetSessionStatsQuery(driverID kernel.UUID) (GetSessionStatsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetSessionStatsQuery{}, err
	}

	return GetSessionStatsQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver the statistics are computed for.
func (q GetSessionStatsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
func (q GetSessionStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionStatsQueryIsNotConstructed)
}

// GetSessionStatsQueryResponse is the statistics read model shown in the
// session header.
//
// EarningsToday is the commission on today's delivered orders, computed as
// DriverCommissionRate times the sum of their totals. DeliveriesToday counts
// those orders; TotalDeliveries and Rating come from the driver profile.
type GetSessionStatsQueryResponse struct {
	EarningsToday   decimal.Decimal
	DeliveriesToday int
	TotalDeliveries int
	Rating          float64
}
