package order_test

import (
	"testing"
	"time"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/domain/model/order"
	"driverhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.Customer{Name: "Alice Smith", Phone: "+15550100"},
		order.Address{Line: "42 Baker Street"},
		decimal.NewFromFloat(25.50),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order starts ready and unassigned", func(t *testing.T) {
		o := newReadyOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Ready, o.Status())
		assert.Nil(t, o.Driver())
		assert.Nil(t, o.DeliveredAt())
		assert.False(t, o.IsActive())
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{},
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromInt(10),
			time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromFloat(-0.01),
			time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects missing customer name and address", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			order.Customer{},
			order.Address{},
			decimal.NewFromInt(10),
			time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects zero createdAt", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromInt(10),
			time.Time{},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	driverID := kernel.NewUUID()

	t.Run("restores assigned order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(),
			&driverID,
			order.Assigned,
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromInt(30),
			time.Now(),
			nil,
		)
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.True(t, o.IsActive())
	})

	t.Run("rejects ready order with driver", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(),
			&driverID,
			order.Ready,
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromInt(30),
			time.Now(),
			nil,
		)
		require.Error(t, err)
	})

	t.Run("rejects assigned order without driver", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(),
			nil,
			order.Assigned,
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromInt(30),
			time.Now(),
			nil,
		)
		require.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(),
			nil,
			order.Unknown,
			order.Customer{Name: "Alice Smith"},
			order.Address{Line: "42 Baker Street"},
			decimal.NewFromInt(30),
			time.Now(),
			nil,
		)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newReadyOrder(t).Validate())
	})

	t.Run("zero value order is invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("assigns ready order to driver exactly once", func(t *testing.T) {
		o := newReadyOrder(t)
		driverID := kernel.NewUUID()

		require.NoError(t, o.Assign(driverID))

		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))

		// A second claim must fail and leave the first assignment intact.
		otherDriver := kernel.NewUUID()
		err := o.Assign(otherDriver)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.True(t, o.Driver().IsEqual(driverID))
	})

	t.Run("rejects invalid driver id", func(t *testing.T) {
		o := newReadyOrder(t)
		require.Error(t, o.Assign(kernel.UUID{}))
		assert.Equal(t, order.Ready, o.Status())
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("happy path through all statuses", func(t *testing.T) {
		o := newReadyOrder(t)
		driverID := kernel.NewUUID()
		deliveredAt := time.Now()

		require.NoError(t, o.Assign(driverID))
		require.NoError(t, o.MarkPickedUp())
		assert.Equal(t, order.PickedUp, o.Status())

		require.NoError(t, o.StartDelivery())
		assert.Equal(t, order.InTransit, o.Status())

		require.NoError(t, o.MarkDelivered(deliveredAt))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		assert.False(t, o.IsActive())
	})

	t.Run("deliver from assigned fails and leaves status unchanged", func(t *testing.T) {
		o := newReadyOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))

		err := o.MarkDelivered(time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Assigned, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("deliver requires a timestamp", func(t *testing.T) {
		o := newReadyOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.MarkPickedUp())
		require.NoError(t, o.StartDelivery())

		require.ErrorIs(t, o.MarkDelivered(time.Time{}), errs.ErrValueIsRequired)
		assert.Equal(t, order.InTransit, o.Status())
	})

	t.Run("statuses never regress", func(t *testing.T) {
		o := newReadyOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.MarkPickedUp())
		require.NoError(t, o.StartDelivery())

		// Earlier actions are rejected once the order moved past them.
		require.ErrorIs(t, o.MarkPickedUp(), order.ErrInvalidTransition)
		assert.Equal(t, order.InTransit, o.Status())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	o1 := newReadyOrder(t)
	o2 := newReadyOrder(t)

	assert.True(t, o1.IsEqual(o1))
	assert.False(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(nil))
}
