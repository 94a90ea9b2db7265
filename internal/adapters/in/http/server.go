// Package http exposes the driver session over a REST API.
//
// Every session endpoint identifies the caller through the X-Driver-ID
// header; the server resolves it to a session via the registry and delegates
// to session methods, so all gating (offline drivers cannot browse the feed,
// one active order at a time) lives in the application layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"driverhub/internal/core/application/session"
	"driverhub/internal/core/application/usecases/commands"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// DriverIDHeader carries the authenticated driver's identifier. A real
// deployment would derive it from an auth token; here the gateway is trusted
// to set it.
const DriverIDHeader = "X-Driver-ID"

// Server handles HTTP requests by dispatching them to per-driver sessions.
type Server struct {
	registry *session.Registry
}

// NewServer creates an HTTP server backed by the given session registry.
func NewServer(registry *session.Registry) *Server {
	return &Server{registry: registry}
}

// RegisterRoutes attaches all session endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1/session")
	api.GET("", s.GetSession)
	api.PUT("/availability", s.SetAvailability)
	api.GET("/feed", s.GetFeed)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/active-order/pickup", s.MarkPickedUp)
	api.POST("/active-order/transit", s.StartDelivery)
	api.POST("/active-order/delivered", s.CompleteDelivery)
	api.GET("/stats", s.GetStats)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// GetSession handles GET /api/v1/session - returns the full session snapshot.
func (s *Server) GetSession(ctx echo.Context) error {
	driverSession, err := s.openSession(ctx)
	if err != nil {
		return err
	}

	view, err := driverSession.View(ctx.Request().Context())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionViewFromSnapshot(view))
}

// SetAvailability handles PUT /api/v1/session/availability - takes the driver
// online or offline.
func (s *Server) SetAvailability(ctx echo.Context) error {
	driverSession, err := s.openSession(ctx)
	if err != nil {
		return err
	}

	var request AvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := driverSession.SetOnline(ctx.Request().Context(), request.Online); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetFeed handles GET /api/v1/session/feed - lists claimable ready orders.
func (s *Server) GetFeed(ctx echo.Context) error {
	driverSession, err := s.openSession(ctx)
	if err != nil {
		return err
	}

	feed, err := driverSession.Feed(ctx.Request().Context())
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]FeedOrder, len(feed))
	for i, item := range feed {
		response[i] = feedOrderFromResponse(item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/session/orders/:orderID/accept - claims a
// ready order for the driver. Exactly one of the drivers racing for the same
// order wins; the rest receive 409.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	driverSession, err := s.openSession(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	accepted, err := driverSession.AcceptOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, activeOrderFromDomain(accepted))
}

// MarkPickedUp handles POST /api/v1/session/active-order/pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	return s.advanceActiveOrder(ctx, (*session.DriverSession).MarkPickedUp)
}

// StartDelivery handles POST /api/v1/session/active-order/transit.
func (s *Server) StartDelivery(ctx echo.Context) error {
	return s.advanceActiveOrder(ctx, (*session.DriverSession).StartDelivery)
}

// CompleteDelivery handles POST /api/v1/session/active-order/delivered.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	return s.advanceActiveOrder(ctx, (*session.DriverSession).CompleteDelivery)
}

// GetStats handles GET /api/v1/session/stats - returns earnings and delivery
// counters for the driver.
func (s *Server) GetStats(ctx echo.Context) error {
	driverSession, err := s.openSession(ctx)
	if err != nil {
		return err
	}

	stats, err := driverSession.Stats(ctx.Request().Context())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statsFromResponse(stats))
}

// advanceActiveOrder runs one lifecycle transition on the active order and
// returns its new state.
func (s *Server) advanceActiveOrder(
	ctx echo.Context,
	transition func(*session.DriverSession, context.Context) (*order.Order, error),
) error {
	driverSession, err := s.openSession(ctx)
	if err != nil {
		return err
	}

	advanced, err := transition(driverSession, ctx.Request().Context())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, activeOrderFromDomain(advanced))
}

// openSession resolves the calling driver's session from the X-Driver-ID
// header. A non-nil error from this method is already a rendered response.
func (s *Server) openSession(ctx echo.Context) (*session.DriverSession, error) {
	header := ctx.Request().Header.Get(DriverIDHeader)
	if header == "" {
		return nil, ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing " + DriverIDHeader + " header",
		})
	}

	driverID, err := kernel.UUIDFromString(header)
	if err != nil {
		return nil, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid driver ID",
		})
	}

	driverSession, err := s.registry.Open(ctx.Request().Context(), driverID)
	if err != nil {
		return nil, errorResponse(ctx, err)
	}

	return driverSession, nil
}

// errorResponse maps application errors onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrNoActiveOrder):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, commands.ErrActiveOrderExists),
		errors.Is(err, session.ErrDriverOffline),
		errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
