package standingorderrepo

import (
	"context"
	"errors"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStandingOrderRepository implements StandingOrderRepository using GORM.
type GormStandingOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStandingOrderRepository creates a new GORM standing order repository.
func NewGormStandingOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormStandingOrderRepository {
	return &GormStandingOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new standing order to the database.
func (r *GormStandingOrderRepository) Add(ctx context.Context, aggregate *standingorder.StandingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing standing order to the database.
func (r *GormStandingOrderRepository) Update(ctx context.Context, aggregate *standingorder.StandingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&StandingOrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("standing order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a standing order by ID.
func (r *GormStandingOrderRepository) Get(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StandingOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("standing order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInActiveStatus retrieves all standing orders that currently generate
// journeys. These are the orders the generation job expands each run.
func (r *GormStandingOrderRepository) GetAllInActiveStatus(ctx context.Context) ([]*standingorder.StandingOrder, error) {
	var dtos []StandingOrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", int(standingorder.Active)).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*standingorder.StandingOrder, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
