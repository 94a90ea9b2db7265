package commands_test

import (
	"testing"
	"time"

	"driverhub/internal/core/domain/model/driver"
	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testCustomer() order.Customer {
	return order.Customer{Name: "Alice Johnson", Phone: "+1-555-0100"}
}

func testAddress() order.Address {
	location, _ := kernel.NewLocation(51.5074, -0.1278)
	return order.Address{Line: "221B Baker Street", Location: &location}
}

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		testCustomer(),
		testAddress(),
		decimal.NewFromFloat(24.50),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

// newActiveOrder restores an order already claimed by driverID in the given
// in-progress status.
func newActiveOrder(t *testing.T, driverID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		&driverID,
		status,
		testCustomer(),
		testAddress(),
		decimal.NewFromFloat(24.50),
		time.Now(),
		nil,
	)
	require.NoError(t, err)
	return o
}

func newTestDriver(t *testing.T, id kernel.UUID, online bool) *driver.Driver {
	t.Helper()

	d, err := driver.RestoreDriver(id, "John Doe", online, nil, 3, 4.8)
	require.NoError(t, err)
	return d
}
