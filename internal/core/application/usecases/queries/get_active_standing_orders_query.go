package queries

import (
	"errors"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/guard"
)

var (
	ErrGetActiveStandingOrdersQueryIsNotConstructed = errors.New(
		"GetActiveStandingOrdersQuery must be created via NewGetActiveStandingOrdersQuery constructor",
	)
)

// GetActiveStandingOrdersQuery retrieves all standing orders that currently
// generate journeys. The generation job runs this to find orders due for
// expansion.
//
// Example:
//
//	query := NewGetActiveStandingOrdersQuery()
//	handler := NewGetActiveStandingOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active standing orders: %w", err)
//	}
type GetActiveStandingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveStandingOrdersQuery creates a query to retrieve active standing orders.
// This is a parameterless query that fetches all orders in active status.
func NewGetActiveStandingOrdersQuery() GetActiveStandingOrdersQuery {
	return GetActiveStandingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveStandingOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveStandingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveStandingOrdersQueryIsNotConstructed)
}

// GetActiveStandingOrdersQueryResponse represents one active standing order.
// LastGeneratedUpTo is nil for orders that have never been expanded.
type GetActiveStandingOrdersQueryResponse struct {
	ID                kernel.UUID
	Name              string
	LastGeneratedUpTo *time.Time
}
