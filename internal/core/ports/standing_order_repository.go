package ports

import (
	"context"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
)

// StandingOrderRepository defines the persistence contract for standing order
// aggregates.
type StandingOrderRepository interface {
	// Add persists a new standing order aggregate.
	Add(ctx context.Context, aggregate *standingorder.StandingOrder) error

	// Update persists changes to an existing standing order aggregate,
	// including its generation watermark.
	Update(ctx context.Context, aggregate *standingorder.StandingOrder) error

	// Get retrieves a standing order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error)

	// GetAllInActiveStatus retrieves the orders eligible for generation.
	GetAllInActiveStatus(ctx context.Context) ([]*standingorder.StandingOrder, error)
}
