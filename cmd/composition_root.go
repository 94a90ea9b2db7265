package cmd

import (
	"log/slog"

	"driverhub/internal/adapters/out/geo"
	"driverhub/internal/adapters/out/postgres"
	"driverhub/internal/adapters/out/postgres/driverrepo"
	"driverhub/internal/adapters/out/postgres/orderrepo"
	"driverhub/internal/core/application/session"
	"driverhub/internal/core/application/usecases/commands"
	"driverhub/internal/core/application/usecases/queries"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPickedUpCommandHandler(f)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSessionStatsQueryHandler() queries.GetSessionStatsQueryHandler {
	return queries.NewGetSessionStatsQueryHandler(c.gormDB)
}

// CreateSessionRegistry wires the per-driver session registry: command and
// query handlers for dispatch, direct repositories for restoring persisted
// session state, and a location reporter factory backed by the external
// location service.
func (c *CompositionRoot) CreateSessionRegistry() (*session.Registry, error) {
	geoClient, err := geo.NewClient(c.config.LocationServiceURL)
	if err != nil {
		return nil, err
	}

	reportHandler := c.CreateReportLocationCommandHandler()
	newReporter := func(driverID kernel.UUID) session.Reporter {
		return jobs.NewLocationReporterJob(
			driverID,
			geoClient.ForDriver(driverID),
			reportHandler,
			c.config.ReportIntervalSeconds,
			c.logger,
		)
	}

	handlers := session.Handlers{
		Availability: c.CreateSetAvailabilityCommandHandler(),
		Accept:       c.CreateAcceptOrderCommandHandler(),
		Pickup:       c.CreateMarkPickedUpCommandHandler(),
		Transit:      c.CreateStartDeliveryCommandHandler(),
		Complete:     c.CreateCompleteDeliveryCommandHandler(),
		Feed:         c.CreateGetAvailableOrdersQueryHandler(),
		Stats:        c.CreateGetSessionStatsQueryHandler(),
	}

	return session.NewRegistry(
		driverrepo.NewGormDriverRepository(c.gormDB, noopTracker{}),
		orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{}),
		handlers,
		newReporter,
		c.logger,
	)
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// noopTracker satisfies the repositories' aggregate tracking dependency on
// read paths that run outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
