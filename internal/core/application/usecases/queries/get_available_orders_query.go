// Package queries contains read-only operations against the record store.
// Implements the Query side of the CQRS architecture: handlers read with
// direct SQL and return read models, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves the order feed: every ready order no
// driver has claimed yet, oldest first. The feed is a shared snapshot: any
// entry may disappear between the read and a claim attempt, so callers treat
// it as advisory, never as a reservation.
//
// Example:
//
//	query := NewGetAvailableOrdersQuery()
//	handler := NewGetAvailableOrdersQueryHandler(db)
//
//	feed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load order feed: %w", err)
//	}
//
//	for _, entry := range feed {
//	    fmt.Printf("%s, %s ($%s)\n", entry.CustomerName, entry.AddressLine, entry.Total)
//	}
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query; the feed is the same for every driver.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is one claimable order in the feed: the
// data a driver weighs before accepting.
type GetAvailableOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerName  string
	CustomerPhone string
	AddressLine   string
	Total         decimal.Decimal
	CreatedAt     time.Time
}
