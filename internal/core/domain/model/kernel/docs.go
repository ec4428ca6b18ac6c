// Package kernel contains the shared value objects of the domain model:
// identifiers, time windows, geographic coordinates, and the domain event
// emitted by every lifecycle transition.
//
// Everything in this package is an immutable value object constructed through
// a factory function. Zero values are invalid and rejected by Validate.
package kernel
