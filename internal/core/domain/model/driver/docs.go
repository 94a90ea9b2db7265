// Package driver provides the Driver aggregate: a courier's persistent
// profile with availability flag, last reported location, and lifetime
// delivery statistics.
//
// Key business rules:
//   - Drivers must have a valid unique identifier and a name
//   - The delivery count only ever grows, by one per completed delivery
//   - The rating stays within [0, 5]
//   - Availability toggling is idempotent; unchanged requests are no-ops
package driver
