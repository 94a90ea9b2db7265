// Package session holds the per-driver session context: the online flag, the
// active-order slot, and the armed location reporter. The session is the
// stateful coordinator above the stateless command and query handlers: it
// gates what the driver may do (no feed while offline, no second active
// order) and keeps the reporter in step with availability.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"driverhub/internal/core/application/usecases/commands"
	"driverhub/internal/core/application/usecases/queries"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
)

// ErrDriverOffline is returned for operations that require the driver to be
// online, such as reading the feed or accepting an order.
var ErrDriverOffline = errors.New("driver is offline")

// Handler interfaces narrow the concrete command/query handlers to what the
// session dispatches, keeping the session testable without a database.
type (
	// AvailabilityHandler persists the driver's online flag.
	AvailabilityHandler interface {
		Handle(ctx context.Context, command commands.SetAvailabilityCommand) error
	}

	// AcceptHandler claims an order for the driver.
	AcceptHandler interface {
		Handle(ctx context.Context, command commands.AcceptOrderCommand) (*order.Order, error)
	}

	// PickupHandler advances the active order to picked_up.
	PickupHandler interface {
		Handle(ctx context.Context, command commands.MarkPickedUpCommand) (*order.Order, error)
	}

	// TransitHandler advances the active order to in_transit.
	TransitHandler interface {
		Handle(ctx context.Context, command commands.StartDeliveryCommand) (*order.Order, error)
	}

	// CompleteHandler finishes the active delivery.
	CompleteHandler interface {
		Handle(ctx context.Context, command commands.CompleteDeliveryCommand) (*order.Order, error)
	}

	// FeedHandler reads the claimable order feed.
	FeedHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.GetAvailableOrdersQueryResponse, error)
	}

	// StatsHandler computes the driver's session statistics.
	StatsHandler interface {
		Handle(ctx context.Context, query queries.GetSessionStatsQuery) (queries.GetSessionStatsQueryResponse, error)
	}

	// Reporter is the periodic location reporting loop. Arm is idempotent;
	// Disarm stops the schedule before the next tick.
	Reporter interface {
		Arm() error
		Disarm()
	}
)

// Handlers bundles the dispatch targets a session needs.
type Handlers struct {
	Availability AvailabilityHandler
	Accept       AcceptHandler
	Pickup       PickupHandler
	Transit      TransitHandler
	Complete     CompleteHandler
	Feed         FeedHandler
	Stats        StatsHandler
}

func (h Handlers) validate() error {
	if h.Availability == nil || h.Accept == nil || h.Pickup == nil ||
		h.Transit == nil || h.Complete == nil || h.Feed == nil || h.Stats == nil {
		return errors.New("session handlers must all be provided")
	}
	return nil
}

// DriverSession is one driver's session state. The internal mutex serializes
// all session-state mutation, so reporter ticks and user operations may
// interleave freely.
//
// The active-order slot changes in exactly three places: accept installs it,
// lifecycle transitions replace it with the advanced order, and completion
// clears it.
type DriverSession struct {
	mu sync.Mutex

	driverID    kernel.UUID
	online      bool
	activeOrder *order.Order

	handlers Handlers
	reporter Reporter
	logger   *slog.Logger
}

// NewDriverSession creates a session restored to the driver's persisted
// state: the stored online flag and the active order, if any. A driver who
// was online when the process restarted gets the reporter re-armed.
func NewDriverSession(
	driverID kernel.UUID,
	online bool,
	activeOrder *order.Order,
	handlers Handlers,
	reporter Reporter,
	logger *slog.Logger,
) (*DriverSession, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if err := handlers.validate(); err != nil {
		return nil, err
	}
	if reporter == nil {
		return nil, errors.New("session reporter must be provided")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &DriverSession{
		driverID:    driverID,
		online:      online,
		activeOrder: activeOrder,
		handlers:    handlers,
		reporter:    reporter,
		logger:      logger.With("component", "session", "driver_id", driverID.String()),
	}

	if online {
		if err := reporter.Arm(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// DriverID returns the driver this session belongs to.
func (s *DriverSession) DriverID() kernel.UUID {
	return s.driverID
}

// IsOnline reports whether the driver is currently online.
func (s *DriverSession) IsOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// ActiveOrder returns the in-progress order, or nil when there is none.
func (s *DriverSession) ActiveOrder() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeOrder
}

// SetOnline toggles availability. The flag is persisted first; only after a
// successful write does the session flip its state and arm or disarm the
// reporter. Requesting the current state is a no-op: nothing is written and
// the reporter is left untouched.
//
// Going offline never touches the active order; an in-progress delivery
// stays trackable to completion.
func (s *DriverSession) SetOnline(ctx context.Context, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.online == online {
		return nil
	}

	command, err := commands.NewSetAvailabilityCommand(s.driverID, online)
	if err != nil {
		return err
	}

	if err = s.handlers.Availability.Handle(ctx, command); err != nil {
		return err
	}

	s.online = online

	if online {
		if err = s.reporter.Arm(); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "driver went online")
		return nil
	}

	s.reporter.Disarm()
	s.logger.InfoContext(ctx, "driver went offline")
	return nil
}

// Feed returns the claimable order feed. Only an online driver with no
// active order sees it: offline yields ErrDriverOffline, an in-progress
// delivery yields commands.ErrActiveOrderExists.
func (s *DriverSession) Feed(ctx context.Context) ([]queries.GetAvailableOrdersQueryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.online {
		return nil, ErrDriverOffline
	}
	if s.activeOrder != nil {
		return nil, commands.ErrActiveOrderExists
	}

	return s.handlers.Feed.Handle(ctx, queries.NewGetAvailableOrdersQuery())
}

// AcceptOrder claims an order from the feed and installs it as the active
// order. A lost race surfaces as an error matching errs.ErrConflict and
// leaves the slot empty; the caller refreshes the feed and tells the driver
// the order is gone.
func (s *DriverSession) AcceptOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.online {
		return nil, ErrDriverOffline
	}
	if s.activeOrder != nil {
		return nil, commands.ErrActiveOrderExists
	}

	command, err := commands.NewAcceptOrderCommand(orderID, s.driverID)
	if err != nil {
		return nil, err
	}

	accepted, err := s.handlers.Accept.Handle(ctx, command)
	if err != nil {
		return nil, err
	}

	s.activeOrder = accepted
	s.logger.InfoContext(ctx, "order accepted", "order_id", accepted.ID().String())
	return accepted, nil
}

// MarkPickedUp advances the active order to picked_up.
func (s *DriverSession) MarkPickedUp(ctx context.Context) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	command, err := commands.NewMarkPickedUpCommand(s.driverID)
	if err != nil {
		return nil, err
	}

	advanced, err := s.handlers.Pickup.Handle(ctx, command)
	if err != nil {
		return nil, err
	}

	s.activeOrder = advanced
	return advanced, nil
}

// StartDelivery advances the active order to in_transit.
func (s *DriverSession) StartDelivery(ctx context.Context) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	command, err := commands.NewStartDeliveryCommand(s.driverID)
	if err != nil {
		return nil, err
	}

	advanced, err := s.handlers.Transit.Handle(ctx, command)
	if err != nil {
		return nil, err
	}

	s.activeOrder = advanced
	return advanced, nil
}

// CompleteDelivery finishes the active delivery and clears the slot, making
// the feed visible again if the driver is still online.
func (s *DriverSession) CompleteDelivery(ctx context.Context) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	command, err := commands.NewCompleteDeliveryCommand(s.driverID)
	if err != nil {
		return nil, err
	}

	completed, err := s.handlers.Complete.Handle(ctx, command)
	if err != nil {
		return nil, err
	}

	s.activeOrder = nil
	s.logger.InfoContext(ctx, "delivery completed", "order_id", completed.ID().String())
	return completed, nil
}

// Stats returns the driver's session statistics. Available regardless of the
// online flag.
func (s *DriverSession) Stats(ctx context.Context) (queries.GetSessionStatsQueryResponse, error) {
	query, err := queries.NewGetSessionStatsQuery(s.driverID)
	if err != nil {
		return queries.GetSessionStatsQueryResponse{}, err
	}

	return s.handlers.Stats.Handle(ctx, query)
}

// View is a consistent snapshot of the session for presentation.
type View struct {
	DriverID    kernel.UUID
	Online      bool
	ActiveOrder *order.Order
	NextAction  order.Action
	HasNext     bool
	FeedVisible bool
	Stats       queries.GetSessionStatsQueryResponse
}

// View assembles the session snapshot: availability, the active order with
// its allowed next action, feed visibility, and current statistics.
func (s *DriverSession) View(ctx context.Context) (View, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		DriverID:    s.driverID,
		Online:      s.online,
		ActiveOrder: s.activeOrder,
		FeedVisible: s.online && s.activeOrder == nil,
		Stats:       stats,
	}

	if s.activeOrder != nil {
		v.NextAction, v.HasNext = s.activeOrder.Status().NextAction()
	}

	return v, nil
}
