package triprepo

import (
	"context"
	"errors"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/core/ports"
	"nemt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTripRepository implements TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTripRepository creates a new GORM trip repository.
func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new trip to the database together with its stop itinerary.
func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
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

// Update saves an existing trip to the database using optimistic locking.
// The trip row is only written when the stored version still matches the
// version the aggregate was loaded with; a stale aggregate yields
// ports.ErrConcurrencyConflict so the caller can reload and retry.
//
// Example:
//
//	if err := repo.Update(ctx, aggregate); err != nil {
//		if errors.Is(err, ports.ErrConcurrencyConflict) {
//			// reload the trip and reapply the change
//		}
//		return err
//	}
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&TripDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("Stops", "id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&TripDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("trip", aggregate.ID().String())
		}
		return ports.ErrConcurrencyConflict
	}

	// Stop rows are replaced wholesale: the itinerary is part of the
	// aggregate and carries no identity of its own outside it.
	if err := r.db.WithContext(ctx).Where("trip_id = ?", dto.ID).Delete(&StopDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto.Stops).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a trip by ID including its stops in itinerary order.
func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	if err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("stops.sequence ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInApprovedStatus retrieves all trips awaiting assignment.
// These are the trips the optimizer feed submits for scheduling.
func (r *GormTripRepository) GetAllInApprovedStatus(ctx context.Context) ([]*trip.Trip, error) {
	var dtos []TripDTO
	if err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("stops.sequence ASC")
		}).
		Where("status = ?", int(trip.Approved)).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trips = append(trips, aggregate)
	}

	return trips, nil
}
