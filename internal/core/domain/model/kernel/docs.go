// Package kernel provides core domain primitives for the driver session
// service. It implements the fundamental building blocks shared by the
// driver and order models.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Location: A value object representing a geographic coordinate pair in decimal degrees
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
