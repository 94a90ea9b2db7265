package queries_test

import (
	"context"
	"testing"
	"time"

	"driverhub/internal/adapters/out/postgres/driverrepo"
	"driverhub/internal/adapters/out/postgres/orderrepo"
	"driverhub/internal/core/application/usecases/queries"
	"driverhub/internal/core/domain/model/driver"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetSessionStatsQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetSessionStatsQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
	driverRepo *driverrepo.GormDriverRepository
	testDriver *driver.Driver
}

func (suite *GetSessionStatsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetSessionStatsQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.driverRepo = driverrepo.NewGormDriverRepository(db, &mockAggregateTracker{})
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetSessionStatsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, drivers").Error
	suite.Require().NoError(err)

	testDriver, err := driver.RestoreDriver(kernel.NewUUID(), "John Doe", true, nil, 57, 4.8)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.driverRepo.Add(context.Background(), testDriver))
	suite.testDriver = testDriver
}

// addDeliveredOrder seeds an order delivered by the suite driver at the given time.
func (suite *GetSessionStatsQueryHandlerTestSuite) addDeliveredOrder(total decimal.Decimal, deliveredAt time.Time) {
	driverID := suite.testDriver.ID()
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		&driverID,
		order.Delivered,
		order.Customer{Name: "Alice Johnson", Phone: "+1-555-0100"},
		order.Address{Line: "221B Baker Street"},
		total,
		deliveredAt.Add(-time.Hour),
		&deliveredAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_NoOrders_ZeroEarnings() {
	query, err := queries.NewGetSessionStatsQuery(suite.testDriver.ID())
	suite.Require().NoError(err)

	stats, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(stats.EarningsToday.IsZero())
	suite.Equal(0, stats.DeliveriesToday)
	suite.Equal(57, stats.TotalDeliveries)
	suite.InDelta(4.8, stats.Rating, 0.001)
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_RatingFromDriverProfile() {
	rated, err := driver.RestoreDriver(kernel.NewUUID(), "Jane Smith", true, nil, 12, 4.3)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.driverRepo.Add(context.Background(), rated))

	query, err := queries.NewGetSessionStatsQuery(rated.ID())
	suite.Require().NoError(err)

	stats, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.InDelta(4.3, stats.Rating, 0.001)
	suite.Equal(12, stats.TotalDeliveries)
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_DeliveredToday_CommissionApplied() {
	suite.addDeliveredOrder(decimal.NewFromFloat(24.50), time.Now())
	suite.addDeliveredOrder(decimal.NewFromFloat(30.00), time.Now())

	query, err := queries.NewGetSessionStatsQuery(suite.testDriver.ID())
	suite.Require().NoError(err)

	stats, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	// 10% of 54.50
	suite.True(stats.EarningsToday.Equal(decimal.NewFromFloat(5.45)),
		"expected 5.45, got %s", stats.EarningsToday)
	suite.Equal(2, stats.DeliveriesToday)
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_DeliveredYesterday_Excluded() {
	suite.addDeliveredOrder(decimal.NewFromFloat(100.00), time.Now().AddDate(0, 0, -1))
	suite.addDeliveredOrder(decimal.NewFromFloat(30.00), time.Now())

	query, err := queries.NewGetSessionStatsQuery(suite.testDriver.ID())
	suite.Require().NoError(err)

	stats, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(stats.EarningsToday.Equal(decimal.NewFromFloat(3.00)),
		"expected 3.00, got %s", stats.EarningsToday)
	suite.Equal(1, stats.DeliveriesToday)
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_OtherDriversOrders_Excluded() {
	otherDriver := kernel.NewUUID()
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		&otherDriver,
		order.Delivered,
		order.Customer{Name: "Bob Brown", Phone: "+1-555-0101"},
		order.Address{Line: "10 Downing Street"},
		decimal.NewFromFloat(50.00),
		time.Now().Add(-time.Hour),
		ptrTime(time.Now()),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))

	query, err := queries.NewGetSessionStatsQuery(suite.testDriver.ID())
	suite.Require().NoError(err)

	stats, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(stats.EarningsToday.IsZero())
	suite.Equal(0, stats.DeliveriesToday)
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_ActiveOrder_NotCounted() {
	ctx := context.Background()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.Customer{Name: "Alice Johnson", Phone: "+1-555-0100"},
		order.Address{Line: "221B Baker Street"},
		decimal.NewFromFloat(40.00),
		time.Now(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	suite.Require().NoError(suite.orderRepo.Claim(ctx, o.ID(), suite.testDriver.ID()))

	query, err := queries.NewGetSessionStatsQuery(suite.testDriver.ID())
	suite.Require().NoError(err)

	stats, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(stats.EarningsToday.IsZero())
	suite.Equal(0, stats.DeliveriesToday)
}

func (suite *GetSessionStatsQueryHandlerTestSuite) TestHandle_UnknownDriver_ReturnsNotFound() {
	query, err := queries.NewGetSessionStatsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestGetSessionStatsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetSessionStatsQueryHandlerTestSuite))
}
