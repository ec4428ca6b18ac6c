// Package standingorderrepo provides data transfer objects and mapping
// functions for standing order persistence. This package implements the
// repository pattern for the standing order domain aggregate, handling the
// conversion between domain entities and database representations.
package standingorderrepo

import (
	"encoding/json"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// StandingOrderDTO represents the database structure for persisting standing
// order aggregates. The journey template and exclusion dates are stored as
// jsonb documents; the effective range is flattened into two columns so
// generation queries can filter on it.
type StandingOrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	PassengerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Status            int       `gorm:"index"`
	RecurrenceRule    string    `gorm:"type:varchar(255);not null"`
	EffectiveStart    time.Time `gorm:"not null"`
	EffectiveEnd      time.Time `gorm:"not null"`
	ExclusionDates    string    `gorm:"type:jsonb;not null"`
	JourneyTemplate   string    `gorm:"type:jsonb;not null"`
	LastGeneratedUpTo *time.Time
}

// TableName specifies the database table name for standing order entities.
// Overrides GORM's default naming convention to use "standing_orders".
func (StandingOrderDTO) TableName() string {
	return "standing_orders"
}

// timeWindowTemplateJSON is the jsonb element for a recurring service window,
// stored as second offsets from midnight of the occurrence date.
type timeWindowTemplateJSON struct {
	StartOffsetSeconds int64 `json:"startOffsetSeconds"`
	EndOffsetSeconds   int64 `json:"endOffsetSeconds"`
}

// stopTemplateJSON mirrors standingorder.StopTemplate in jsonb form.
type stopTemplateJSON struct {
	Type               string                   `json:"type"`
	AccessPointID      string                   `json:"accessPointId"`
	PlaceID            string                   `json:"placeId"`
	DurationSeconds    int64                    `json:"durationSeconds"`
	TimeWindows        []timeWindowTemplateJSON `json:"timeWindows"`
	ProcedureOverrides *trip.ProcedureOverrides `json:"procedureOverrides,omitempty"`
}

// legTemplateJSON mirrors standingorder.LegTemplate in jsonb form.
type legTemplateJSON struct {
	TransitionKind    *string            `json:"transitionKind,omitempty"`
	TransitionSeconds *int64             `json:"transitionSeconds,omitempty"`
	Stops             []stopTemplateJSON `json:"stops"`
}

// driverConstraintsJSON mirrors constraint.DriverConstraints in jsonb form.
type driverConstraintsJSON struct {
	IDs                  []string `json:"ids,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	RequiredAttributeIDs []string `json:"requiredAttributeIds,omitempty"`
}

// vehicleConstraintsJSON mirrors constraint.VehicleConstraints in jsonb form.
type vehicleConstraintsJSON struct {
	IDs  []string `json:"ids,omitempty"`
	Type string   `json:"type,omitempty"`
}

// constraintSetJSON mirrors constraint.ConstraintSet in jsonb form.
type constraintSetJSON struct {
	Driver  *driverConstraintsJSON  `json:"driver,omitempty"`
	Vehicle *vehicleConstraintsJSON `json:"vehicle,omitempty"`
}

// tripConstraintsJSON mirrors constraint.TripConstraints in jsonb form.
type tripConstraintsJSON struct {
	Preferences  *constraintSetJSON `json:"preferences,omitempty"`
	Requirements *constraintSetJSON `json:"requirements,omitempty"`
	Prohibitions *constraintSetJSON `json:"prohibitions,omitempty"`
}

// journeyTemplateJSON mirrors standingorder.JourneyTemplate in jsonb form.
type journeyTemplateJSON struct {
	FundingSourceID      string               `json:"fundingSourceId"`
	CapacityRequirements capacity.Vector      `json:"capacityRequirements"`
	Constraints          *tripConstraintsJSON `json:"constraints,omitempty"`
	Legs                 []legTemplateJSON    `json:"legs"`
}

// fromDomain converts a standing order domain aggregate to its database
// representation.
func fromDomain(aggregate *standingorder.StandingOrder) (StandingOrderDTO, error) {
	exclusions, err := json.Marshal(aggregate.ExclusionDates())
	if err != nil {
		return StandingOrderDTO{}, err
	}

	template, err := templateToJSON(aggregate.JourneyTemplate())
	if err != nil {
		return StandingOrderDTO{}, err
	}

	return StandingOrderDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		PassengerID:       aggregate.Passenger().Bytes(),
		Status:            int(aggregate.Status()),
		RecurrenceRule:    aggregate.RecurrenceRule(),
		EffectiveStart:    aggregate.EffectiveRange().Earliest(),
		EffectiveEnd:      aggregate.EffectiveRange().Latest(),
		ExclusionDates:    string(exclusions),
		JourneyTemplate:   template,
		LastGeneratedUpTo: aggregate.LastGeneratedUpTo(),
	}, nil
}

// toDomain converts a database DTO to a standing order domain aggregate.
// Reconstructs the complete aggregate using RestoreStandingOrder.
func toDomain(dto StandingOrderDTO) (*standingorder.StandingOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	passengerID, err := kernel.UUIDFromBytes(dto.PassengerID[:])
	if err != nil {
		return nil, err
	}

	effectiveRange, err := kernel.NewTimeWindow(dto.EffectiveStart, dto.EffectiveEnd)
	if err != nil {
		return nil, err
	}

	var exclusionDates []time.Time
	if err = json.Unmarshal([]byte(dto.ExclusionDates), &exclusionDates); err != nil {
		return nil, err
	}

	template, err := templateToDomain(dto.JourneyTemplate)
	if err != nil {
		return nil, err
	}

	return standingorder.RestoreStandingOrder(
		id,
		dto.Name,
		passengerID,
		standingorder.Status(dto.Status),
		dto.RecurrenceRule,
		effectiveRange,
		exclusionDates,
		template,
		dto.LastGeneratedUpTo,
	)
}

// templateToJSON encodes a journey template as a jsonb document.
func templateToJSON(template standingorder.JourneyTemplate) (string, error) {
	legs := make([]legTemplateJSON, 0, len(template.Legs))
	for _, leg := range template.Legs {
		legDoc := legTemplateJSON{
			Stops: make([]stopTemplateJSON, 0, len(leg.Stops)),
		}
		if leg.TransitionToNext != nil {
			kind := string(leg.TransitionToNext.Kind)
			seconds := int64(leg.TransitionToNext.Duration / time.Second)
			legDoc.TransitionKind = &kind
			legDoc.TransitionSeconds = &seconds
		}
		for _, stop := range leg.Stops {
			windows := make([]timeWindowTemplateJSON, 0, len(stop.TimeWindows))
			for _, window := range stop.TimeWindows {
				windows = append(windows, timeWindowTemplateJSON{
					StartOffsetSeconds: int64(window.StartOffset / time.Second),
					EndOffsetSeconds:   int64(window.EndOffset / time.Second),
				})
			}
			legDoc.Stops = append(legDoc.Stops, stopTemplateJSON{
				Type:               string(stop.Type),
				AccessPointID:      stop.AccessPointID.String(),
				PlaceID:            stop.PlaceID.String(),
				DurationSeconds:    int64(stop.Duration / time.Second),
				TimeWindows:        windows,
				ProcedureOverrides: stop.ProcedureOverrides,
			})
		}
		legs = append(legs, legDoc)
	}

	doc := journeyTemplateJSON{
		FundingSourceID:      template.FundingSourceID.String(),
		CapacityRequirements: template.CapacityRequirements,
		Constraints:          constraintsToJSON(template.Constraints),
		Legs:                 legs,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// templateToDomain decodes a journey template from its jsonb document.
func templateToDomain(s string) (standingorder.JourneyTemplate, error) {
	var doc journeyTemplateJSON
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return standingorder.JourneyTemplate{}, err
	}

	fundingSourceID, err := kernel.UUIDFromString(doc.FundingSourceID)
	if err != nil {
		return standingorder.JourneyTemplate{}, err
	}

	constraints, err := constraintsToDomain(doc.Constraints)
	if err != nil {
		return standingorder.JourneyTemplate{}, err
	}

	legs := make([]standingorder.LegTemplate, 0, len(doc.Legs))
	for _, legDoc := range doc.Legs {
		leg := standingorder.LegTemplate{
			Stops: make([]standingorder.StopTemplate, 0, len(legDoc.Stops)),
		}
		if legDoc.TransitionKind != nil && legDoc.TransitionSeconds != nil {
			transition, transitionErr := journey.NewLegTransition(
				journey.TransitionKind(*legDoc.TransitionKind),
				time.Duration(*legDoc.TransitionSeconds)*time.Second)
			if transitionErr != nil {
				return standingorder.JourneyTemplate{}, transitionErr
			}
			leg.TransitionToNext = &transition
		}
		for _, stopDoc := range legDoc.Stops {
			accessPointID, stopErr := kernel.UUIDFromString(stopDoc.AccessPointID)
			if stopErr != nil {
				return standingorder.JourneyTemplate{}, stopErr
			}
			placeID, stopErr := kernel.UUIDFromString(stopDoc.PlaceID)
			if stopErr != nil {
				return standingorder.JourneyTemplate{}, stopErr
			}
			windows := make([]standingorder.TimeWindowTemplate, 0, len(stopDoc.TimeWindows))
			for _, windowDoc := range stopDoc.TimeWindows {
				windows = append(windows, standingorder.TimeWindowTemplate{
					StartOffset: time.Duration(windowDoc.StartOffsetSeconds) * time.Second,
					EndOffset:   time.Duration(windowDoc.EndOffsetSeconds) * time.Second,
				})
			}
			leg.Stops = append(leg.Stops, standingorder.StopTemplate{
				Type:               trip.StopType(stopDoc.Type),
				AccessPointID:      accessPointID,
				PlaceID:            placeID,
				Duration:           time.Duration(stopDoc.DurationSeconds) * time.Second,
				TimeWindows:        windows,
				ProcedureOverrides: stopDoc.ProcedureOverrides,
			})
		}
		legs = append(legs, leg)
	}

	return standingorder.JourneyTemplate{
		FundingSourceID:      fundingSourceID,
		CapacityRequirements: doc.CapacityRequirements,
		Constraints:          constraints,
		Legs:                 legs,
	}, nil
}

// constraintsToJSON encodes trip constraints for the template document.
func constraintsToJSON(constraints *constraint.TripConstraints) *tripConstraintsJSON {
	if constraints == nil {
		return nil
	}
	return &tripConstraintsJSON{
		Preferences:  setToJSON(constraints.Preferences),
		Requirements: setToJSON(constraints.Requirements),
		Prohibitions: setToJSON(constraints.Prohibitions),
	}
}

// constraintsToDomain decodes trip constraints from the template document.
func constraintsToDomain(doc *tripConstraintsJSON) (*constraint.TripConstraints, error) {
	if doc == nil {
		return nil, nil
	}

	preferences, err := setToDomain(doc.Preferences)
	if err != nil {
		return nil, err
	}
	requirements, err := setToDomain(doc.Requirements)
	if err != nil {
		return nil, err
	}
	prohibitions, err := setToDomain(doc.Prohibitions)
	if err != nil {
		return nil, err
	}

	return &constraint.TripConstraints{
		Preferences:  preferences,
		Requirements: requirements,
		Prohibitions: prohibitions,
	}, nil
}

func setToJSON(set *constraint.ConstraintSet) *constraintSetJSON {
	if set == nil {
		return nil
	}

	doc := &constraintSetJSON{}
	if set.Driver != nil {
		doc.Driver = &driverConstraintsJSON{
			IDs:                  uuidsToStrings(set.Driver.IDs),
			Gender:               string(set.Driver.Gender),
			RequiredAttributeIDs: set.Driver.RequiredAttributeIDs,
		}
	}
	if set.Vehicle != nil {
		doc.Vehicle = &vehicleConstraintsJSON{
			IDs:  uuidsToStrings(set.Vehicle.IDs),
			Type: string(set.Vehicle.Type),
		}
	}
	return doc
}

func setToDomain(doc *constraintSetJSON) (*constraint.ConstraintSet, error) {
	if doc == nil {
		return nil, nil
	}

	set := &constraint.ConstraintSet{}
	if doc.Driver != nil {
		ids, err := stringsToUUIDs(doc.Driver.IDs)
		if err != nil {
			return nil, err
		}
		set.Driver = &constraint.DriverConstraints{
			IDs:                  ids,
			Gender:               constraint.Gender(doc.Driver.Gender),
			RequiredAttributeIDs: doc.Driver.RequiredAttributeIDs,
		}
	}
	if doc.Vehicle != nil {
		ids, err := stringsToUUIDs(doc.Vehicle.IDs)
		if err != nil {
			return nil, err
		}
		set.Vehicle = &constraint.VehicleConstraints{
			IDs:  ids,
			Type: constraint.VehicleType(doc.Vehicle.Type),
		}
	}
	return set, nil
}

func uuidsToStrings(ids []kernel.UUID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
