// Package kernel holds the value objects shared by the orderflow domain model.
//
//   - UUID: order identity, zero until the store assigns it
//   - Money: a non-negative amount with a fixed scale of two decimal places
//
// Values are immutable and safe for concurrent use.
package kernel
