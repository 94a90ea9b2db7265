package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"driverhub/internal/core/domain/model/driver"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"
)

// DriverProvider loads a driver profile outside any unit of work, for
// restoring a session's initial state.
type DriverProvider interface {
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}

// ActiveOrderProvider loads a driver's in-progress order, if any.
type ActiveOrderProvider interface {
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error)
}

// ReporterFactory builds one location reporter per driver session.
type ReporterFactory func(driverID kernel.UUID) Reporter

// Registry hands out one DriverSession per driver, creating it on first use
// by restoring the driver's persisted state. Sessions live for the process
// lifetime; a driver reconnecting gets the same session object back.
type Registry struct {
	mu       sync.Mutex
	sessions map[kernel.UUID]*DriverSession

	drivers      DriverProvider
	activeOrders ActiveOrderProvider
	handlers     Handlers
	newReporter  ReporterFactory
	logger       *slog.Logger
}

// NewRegistry creates a session registry over the given providers.
func NewRegistry(
	drivers DriverProvider,
	activeOrders ActiveOrderProvider,
	handlers Handlers,
	newReporter ReporterFactory,
	logger *slog.Logger,
) (*Registry, error) {
	if drivers == nil || activeOrders == nil {
		return nil, errors.New("registry providers must be provided")
	}
	if err := handlers.validate(); err != nil {
		return nil, err
	}
	if newReporter == nil {
		return nil, errors.New("registry reporter factory must be provided")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		sessions:     make(map[kernel.UUID]*DriverSession),
		drivers:      drivers,
		activeOrders: activeOrders,
		handlers:     handlers,
		newReporter:  newReporter,
		logger:       logger,
	}, nil
}

// Open returns the driver's session, restoring it from persistence on first
// use. Returns an error matching errs.ErrObjectNotFound for an unknown
// driver.
func (r *Registry) Open(ctx context.Context, driverID kernel.UUID) (*DriverSession, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[driverID]; ok {
		return s, nil
	}

	profile, err := r.drivers.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}

	active, err := r.activeOrders.GetActiveByDriver(ctx, driverID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	s, err := NewDriverSession(
		driverID,
		profile.IsAvailable(),
		active,
		r.handlers,
		r.newReporter(driverID),
		r.logger,
	)
	if err != nil {
		return nil, err
	}

	r.sessions[driverID] = s
	return s, nil
}
