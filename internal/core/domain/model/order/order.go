package order

import (
	"errors"
	"fmt"
	"time"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrDeliveredAtAlreadySet is returned when an order that already carries a
	// delivered timestamp is delivered again. The timestamp is written exactly once.
	ErrDeliveredAtAlreadySet = errors.New("deliveredAt is already set")
)

// Order is the aggregate root for a delivery order as seen by the driver
// session: the claimable unit in the feed and, once claimed, the single
// active order a driver progresses to completion.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a non-negative total
//   - Must have a delivery destination and customer contact details
//   - driverID is set exactly once, by Assign, together with the
//     Ready -> Assigned transition
//   - Status transitions follow the fixed forward-only lifecycle
//   - deliveredAt is set exactly once, on the transition into Delivered
//
// All fields are private; state changes go through validated methods.
type Order struct {
	id kernel.UUID

	// driverID is the claiming driver's ID (nil while the order is Ready)
	driverID *kernel.UUID

	status Status

	// total is the order value the delivery commission is computed from
	total decimal.Decimal

	customer Customer

	// deliveryAddress is the destination, with coordinates when geocoded
	deliveryAddress Address

	createdAt time.Time

	// deliveredAt is set on the transition into Delivered, never earlier
	deliveredAt *time.Time

	isConstructed bool
}

// Customer holds the contact details joined onto the order for the driver:
// who receives the delivery and how to reach them.
type Customer struct {
	Name  string
	Phone string
}

// Address is the delivery destination. Line is the human-readable address;
// Location carries coordinates when the address has been geocoded.
type Address struct {
	Line     string
	Location *kernel.Location
}

// NewOrder creates a Ready order with no driver assigned. Orders are created
// by the ordering side of the platform; the driver session only ever restores
// them from storage, so this constructor mainly serves tests and seeding.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	deliveryAddress Address,
	total decimal.Decimal,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Ready,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// creation rules, but still enforcing structural invariants: a valid status,
// and driver assignment consistent with that status.
func RestoreOrder(
	id kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	customer Customer,
	deliveryAddress Address,
	total decimal.Decimal,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		status:        status,
		driverID:      driverID,
		createdAt:     createdAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setDeliveryAddress(deliveryAddress),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Driver returns the claiming driver's ID, or nil while the order is Ready.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the order value.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// Customer returns the customer contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() Address {
	return o.deliveryAddress
}

// CreatedAt returns the order creation time. The feed is ordered by this
// value ascending, oldest order first.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the completion time, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// IsActive reports whether the order is claimed and in progress.
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// Assign claims the order for the given driver: Ready -> Assigned, driverID
// set exactly once. Returns ErrInvalidTransition when the order is not Ready.
//
// Note: Assign enforces the domain rule on an in-memory aggregate. The
// authoritative race arbitration between two drivers happens at the
// persistence layer through the conditional claim write; this method exists
// so restored aggregates and tests uphold the same rule.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	return nil
}

// MarkPickedUp records that the driver collected the order: Assigned -> PickedUp.
func (o *Order) MarkPickedUp() error {
	newStatus, err := o.status.MarkPickedUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartDelivery records that the driver left for the customer: PickedUp -> InTransit.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered completes the order: InTransit -> Delivered, with the
// delivered timestamp set exactly once. The order is left unchanged when the
// transition is not allowed.
func (o *Order) MarkDelivered(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}
	if o.deliveredAt != nil {
		return ErrDeliveredAtAlreadySet
	}

	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomer validates and sets the customer contact details.
func (o *Order) setCustomer(customer Customer) error {
	if customer.Name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customer = customer
	return nil
}

// setDeliveryAddress validates and sets the delivery destination.
func (o *Order) setDeliveryAddress(address Address) error {
	if address.Line == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	if address.Location != nil {
		if err := address.Location.Validate(); err != nil {
			return err
		}
	}
	o.deliveryAddress = address
	return nil
}

// setTotal validates and sets the order total. Totals are never negative.
func (o *Order) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid",
			fmt.Errorf("%s is negative", total.String()))
	}
	o.total = total
	return nil
}
