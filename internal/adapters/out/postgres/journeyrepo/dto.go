// Package journeyrepo provides data transfer objects and mapping functions for
// journey persistence. This package implements the repository pattern for the
// journey domain aggregate, handling the conversion between domain entities and
// database representations.
package journeyrepo

import (
	"time"

	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JourneyDTO represents the database structure for persisting journey
// aggregates. The ordered legs live in a child table keyed by sequence.
type JourneyDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PassengerID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name                  string     `gorm:"type:varchar(255)"`
	BookingDate           time.Time  `gorm:"not null"`
	SourceStandingOrderID *uuid.UUID `gorm:"type:uuid;index"`
	Legs                  []LegDTO   `gorm:"foreignKey:JourneyID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for journey entities.
// Overrides GORM's default naming convention to use "journeys".
func (JourneyDTO) TableName() string {
	return "journeys"
}

// LegDTO represents the database structure for persisting journey legs.
// A leg references the trip that serves it; the optional transition columns
// describe what the crew does in the gap before the next leg.
type LegDTO struct {
	JourneyID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence          int       `gorm:"primaryKey"`
	TripID            uuid.UUID `gorm:"type:uuid;not null;index"`
	TransitionKind    *string   `gorm:"type:varchar(32)"`
	TransitionSeconds *int64
}

// TableName specifies the database table name for leg entities.
// Overrides GORM's default naming convention to use "journey_legs".
func (LegDTO) TableName() string {
	return "journey_legs"
}

// fromDomain converts a journey domain aggregate to its database representation.
func fromDomain(aggregate *journey.Journey) JourneyDTO {
	journeyID := aggregate.ID().Bytes()

	legs := make([]LegDTO, 0, len(aggregate.Legs()))
	for i, leg := range aggregate.Legs() {
		dto := LegDTO{
			JourneyID: journeyID,
			Sequence:  i,
			TripID:    leg.Trip().Bytes(),
		}
		if transition := leg.TransitionToNext(); transition != nil {
			kind := string(transition.Kind)
			seconds := int64(transition.Duration / time.Second)
			dto.TransitionKind = &kind
			dto.TransitionSeconds = &seconds
		}
		legs = append(legs, dto)
	}

	var sourceID *uuid.UUID
	if source := aggregate.SourceStandingOrder(); source != nil {
		raw := source.Bytes()
		sourceID = &raw
	}

	return JourneyDTO{
		ID:                    journeyID,
		PassengerID:           aggregate.Passenger().Bytes(),
		Name:                  aggregate.Name(),
		BookingDate:           aggregate.BookingDate(),
		SourceStandingOrderID: sourceID,
		Legs:                  legs,
	}
}

// toDomain converts a database DTO to a journey domain aggregate.
// Reconstructs the complete aggregate including its legs using RestoreJourney.
func toDomain(dto JourneyDTO) (*journey.Journey, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	passengerID, err := kernel.UUIDFromBytes(dto.PassengerID[:])
	if err != nil {
		return nil, err
	}

	var sourceID *kernel.UUID
	if dto.SourceStandingOrderID != nil {
		restored, sourceErr := kernel.UUIDFromBytes((*dto.SourceStandingOrderID)[:])
		if sourceErr != nil {
			return nil, sourceErr
		}
		sourceID = &restored
	}

	legs := make([]journey.Leg, 0, len(dto.Legs))
	for _, legDTO := range dto.Legs {
		tripID, legErr := kernel.UUIDFromBytes(legDTO.TripID[:])
		if legErr != nil {
			return nil, legErr
		}

		var transition *journey.LegTransition
		if legDTO.TransitionKind != nil && legDTO.TransitionSeconds != nil {
			restored, transitionErr := journey.NewLegTransition(
				journey.TransitionKind(*legDTO.TransitionKind),
				time.Duration(*legDTO.TransitionSeconds)*time.Second)
			if transitionErr != nil {
				return nil, transitionErr
			}
			transition = &restored
		}

		leg, legErr := journey.NewLeg(tripID, transition)
		if legErr != nil {
			return nil, legErr
		}
		legs = append(legs, leg)
	}

	return journey.RestoreJourney(id, passengerID, legs, dto.Name, dto.BookingDate, sourceID)
}
