package ports

import (
	"context"

	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
)

// JourneyRepository defines the persistence contract for journey aggregates.
type JourneyRepository interface {
	// Add persists a new journey aggregate.
	Add(ctx context.Context, aggregate *journey.Journey) error

	// Get retrieves a journey aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*journey.Journey, error)

	// GetBySourceStandingOrder retrieves every journey generated from the
	// given standing order, oldest first.
	GetBySourceStandingOrder(ctx context.Context, standingOrderID kernel.UUID) ([]*journey.Journey, error)
}
