// Package order implements the Order aggregate and its delivery lifecycle.
//
// An order enters the driver's world in Ready status with no driver assigned.
// A driver claims it (Assigned) and then advances it through PickedUp and
// InTransit to the terminal Delivered status. Transitions are forward-only
// and triggered exclusively by explicit driver actions; an action attempted
// from the wrong status fails with ErrInvalidTransition and leaves the order
// unchanged.
package order
