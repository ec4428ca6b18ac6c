package queries

import (
	"errors"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/guard"
)

var (
	ErrGetUnscheduledTripsQueryIsNotConstructed = errors.New(
		"GetUnscheduledTripsQuery must be created via NewGetUnscheduledTripsQuery constructor",
	)
)

// GetUnscheduledTripsQuery retrieves all trips awaiting vehicle assignment.
// Returns trips in approved status, the pool the optimizer works from.
//
// Example:
//
//	query := NewGetUnscheduledTripsQuery()
//	handler := NewGetUnscheduledTripsQueryHandler(db)
//
//	trips, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get unscheduled trips: %w", err)
//	}
//
//	fmt.Printf("Found %d trips awaiting assignment\n", len(trips))
type GetUnscheduledTripsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnscheduledTripsQuery creates a query to retrieve trips awaiting assignment.
// This is a parameterless query that fetches all approved, unscheduled trips.
func NewGetUnscheduledTripsQuery() GetUnscheduledTripsQuery {
	return GetUnscheduledTripsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnscheduledTripsQueryIsNotConstructed if validation fails.
func (q GetUnscheduledTripsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnscheduledTripsQueryIsNotConstructed)
}

// GetUnscheduledTripsQueryResponse represents one trip awaiting assignment.
// Carries the data the optimizer needs to place the trip on a route: who it
// serves, the occupancy it demands, and any assignment rules, both as the
// stored jsonb documents.
type GetUnscheduledTripsQueryResponse struct {
	ID                   kernel.UUID
	PassengerID          kernel.UUID
	CapacityRequirements string
	Constraints          *string
}
