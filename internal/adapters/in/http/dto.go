package http

import (
	"time"

	"driverhub/internal/core/application/session"
	"driverhub/internal/core/application/usecases/queries"
	"driverhub/internal/core/domain/model/order"
)

// Error is the uniform error body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AvailabilityRequest toggles the driver's availability.
type AvailabilityRequest struct {
	Online bool `json:"online"`
}

// FeedOrder is one claimable order in the ready feed.
type FeedOrder struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	AddressLine   string    `json:"address_line"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// ActiveOrder is the driver's current order with its lifecycle position.
type ActiveOrder struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	AddressLine   string     `json:"address_line"`
	Total         string     `json:"total"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// Stats is the session statistics header.
type Stats struct {
	EarningsToday   string  `json:"earnings_today"`
	DeliveriesToday int     `json:"deliveries_today"`
	TotalDeliveries int     `json:"total_deliveries"`
	Rating          float64 `json:"rating"`
}

// SessionView is the full session snapshot: availability, active order with
// the single allowed next action, feed visibility and statistics.
type SessionView struct {
	DriverID    string       `json:"driver_id"`
	Online      bool         `json:"online"`
	ActiveOrder *ActiveOrder `json:"active_order,omitempty"`
	NextAction  string       `json:"next_action,omitempty"`
	FeedVisible bool         `json:"feed_visible"`
	Stats       Stats        `json:"stats"`
}

func feedOrderFromResponse(item queries.GetAvailableOrdersQueryResponse) FeedOrder {
	return FeedOrder{
		ID:            item.ID.String(),
		CustomerName:  item.CustomerName,
		CustomerPhone: item.CustomerPhone,
		AddressLine:   item.AddressLine,
		Total:         item.Total.StringFixed(2),
		CreatedAt:     item.CreatedAt,
	}
}

func activeOrderFromDomain(aggregate *order.Order) *ActiveOrder {
	if aggregate == nil {
		return nil
	}
	return &ActiveOrder{
		ID:            aggregate.ID().String(),
		Status:        aggregate.Status().String(),
		CustomerName:  aggregate.Customer().Name,
		CustomerPhone: aggregate.Customer().Phone,
		AddressLine:   aggregate.DeliveryAddress().Line,
		Total:         aggregate.Total().StringFixed(2),
		DeliveredAt:   aggregate.DeliveredAt(),
	}
}

func statsFromResponse(response queries.GetSessionStatsQueryResponse) Stats {
	return Stats{
		EarningsToday:   response.EarningsToday.StringFixed(2),
		DeliveriesToday: response.DeliveriesToday,
		TotalDeliveries: response.TotalDeliveries,
		Rating:          response.Rating,
	}
}

func sessionViewFromSnapshot(view session.View) SessionView {
	response := SessionView{
		DriverID:    view.DriverID.String(),
		Online:      view.Online,
		ActiveOrder: activeOrderFromDomain(view.ActiveOrder),
		FeedVisible: view.FeedVisible,
		Stats:       statsFromResponse(view.Stats),
	}
	if view.HasNext {
		response.NextAction = string(view.NextAction)
	}
	return response
}
