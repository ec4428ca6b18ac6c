package ports

import (
	"context"
	"errors"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
)

// ErrConcurrencyConflict is returned by Update when the aggregate's version
// does not match the stored one, meaning another transaction changed the
// aggregate first.
var ErrConcurrencyConflict = errors.New("aggregate was modified concurrently")

// TripRepository defines the persistence contract for trip aggregates.
type TripRepository interface {
	// Add persists a new trip aggregate, including its stops.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists changes to an existing trip aggregate using optimistic
	// locking on the trip's version. Returns ErrConcurrencyConflict when the
	// stored version differs from the aggregate's.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip aggregate with its stops by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetAllInApprovedStatus retrieves the trips awaiting scheduling.
	// This is the optimizer feed.
	GetAllInApprovedStatus(ctx context.Context) ([]*trip.Trip, error)
}
