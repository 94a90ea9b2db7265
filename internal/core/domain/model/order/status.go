package order

import (
	"errors"
	"fmt"

	"driverhub/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a lifecycle action is attempted from a
// status that does not allow it. The order is left unchanged in that case.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status represents the lifecycle state of a delivery order.
// It implements a strictly forward state machine; no transition ever moves
// an order back to an earlier status.
//
// State transitions:
//
//	Ready ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//
// Each transition is triggered by an explicit driver action; there are no
// automatic transitions. Status is a value object that validates transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Ready is the initial status of an order that finished preparation and
	// waits for a driver to claim it. Ready orders have no driver assigned.
	Ready

	// Assigned indicates a driver claimed the order and owns it exclusively.
	Assigned

	// PickedUp indicates the driver collected the order from the restaurant.
	PickedUp

	// InTransit indicates the driver is on the way to the delivery address.
	InTransit

	// Delivered indicates the order reached the customer. This is the final
	// state; the delivered timestamp is set exactly once on entry.
	Delivered
)

// Action names the driver operation that advances an order out of its
// current status. Exposed to the presentation layer so it can render the
// single allowed next step.
type Action string

const (
	ActionMarkPickedUp  Action = "mark_picked_up"
	ActionStartDelivery Action = "start_delivery"
	ActionMarkDelivered Action = "mark_delivered"
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Ready:     "ready",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Ready:     "ready",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid. Used when reconstructing
// orders from persistence or parsing external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status ("ready", "picked_up", ...).
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether the status marks an order currently owned and in
// progress by a driver. A driver may hold at most one active order.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// IsTerminal reports whether the status is final.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment: Ready orders must not have a driver, all later statuses
// must.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Ready {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasDriver && s != Ready {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned. Only Ready orders can be
// assigned; a driver owns an order exactly once.
func (s Status) Assign() (Status, error) {
	if s != Ready {
		return Unknown, fmt.Errorf("%w: cannot assign order in status %s", ErrInvalidTransition, s)
	}

	return Assigned, nil
}

// MarkPickedUp transitions the status to PickedUp. Valid only from Assigned.
func (s Status) MarkPickedUp() (Status, error) {
	if s != Assigned {
		return Unknown, fmt.Errorf("%w: cannot mark order in status %s as picked up", ErrInvalidTransition, s)
	}

	return PickedUp, nil
}

// StartDelivery transitions the status to InTransit. Valid only from PickedUp.
func (s Status) StartDelivery() (Status, error) {
	if s != PickedUp {
		return Unknown, fmt.Errorf("%w: cannot start delivery for order in status %s", ErrInvalidTransition, s)
	}

	return InTransit, nil
}

// MarkDelivered transitions the status to Delivered, the terminal state.
// Valid only from InTransit; intermediate steps cannot be skipped.
func (s Status) MarkDelivered() (Status, error) {
	if s != InTransit {
		return Unknown, fmt.Errorf("%w: cannot mark order in status %s as delivered", ErrInvalidTransition, s)
	}

	return Delivered, nil
}

// NextAction returns the single driver action allowed from this status,
// and false when no action applies (Ready, Delivered, Unknown).
func (s Status) NextAction() (Action, bool) {
	switch s {
	case Assigned:
		return ActionMarkPickedUp, true
	case PickedUp:
		return ActionStartDelivery, true
	case InTransit:
		return ActionMarkDelivered, true
	default:
		return "", false
	}
}
