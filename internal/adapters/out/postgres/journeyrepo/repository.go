package journeyrepo

import (
	"context"
	"errors"

	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJourneyRepository implements JourneyRepository using GORM.
type GormJourneyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJourneyRepository creates a new GORM journey repository.
func NewGormJourneyRepository(db *gorm.DB, tracker aggregateTracker) *GormJourneyRepository {
	return &GormJourneyRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new journey to the database together with its legs.
func (r *GormJourneyRepository) Add(ctx context.Context, aggregate *journey.Journey) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a journey by ID including its legs in order.
func (r *GormJourneyRepository) Get(ctx context.Context, id kernel.UUID) (*journey.Journey, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JourneyDTO
	if err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB {
			return db.Order("journey_legs.sequence ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("journey", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySourceStandingOrder retrieves every journey generated from the given
// standing order, oldest first by booking date.
func (r *GormJourneyRepository) GetBySourceStandingOrder(ctx context.Context, standingOrderID kernel.UUID) ([]*journey.Journey, error) {
	if err := standingOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []JourneyDTO
	if err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB {
			return db.Order("journey_legs.sequence ASC")
		}).
		Where("source_standing_order_id = ?", standingOrderID.Bytes()).
		Order("booking_date ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	journeys := make([]*journey.Journey, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, aggregate)
	}

	return journeys, nil
}
