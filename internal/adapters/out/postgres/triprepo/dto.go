// Package triprepo provides data transfer objects and mapping functions for trip persistence.
// This package implements the repository pattern for the trip domain aggregate, handling
// the conversion between domain entities and database representations.
package triprepo

import (
	"encoding/json"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO represents the database structure for persisting trip aggregates.
// Capacity requirements and assignment constraints are stored as jsonb
// documents; the stop itinerary lives in a child table ordered by sequence.
type TripDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PassengerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	FundingSourceID      uuid.UUID  `gorm:"type:uuid;not null"`
	JourneyID            *uuid.UUID `gorm:"type:uuid;index"`
	AuthorizationID      *uuid.UUID `gorm:"type:uuid"`
	RouteManifestID      *uuid.UUID `gorm:"type:uuid;index"`
	PickupType           string     `gorm:"type:varchar(16);not null"`
	CapacityRequirements string     `gorm:"type:jsonb;not null"`
	Constraints          *string    `gorm:"type:jsonb"`
	PostTripWaitSeconds  *int64
	PostTripNextTripID   *uuid.UUID `gorm:"type:uuid"`
	DriverID             *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID            *uuid.UUID `gorm:"type:uuid;index"`
	RejectionReason      string
	CancellationReason   string
	Status               int       `gorm:"index"`
	Version              int       `gorm:"not null"`
	Stops                []StopDTO `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for trip entities.
// Overrides GORM's default naming convention to use "trips".
func (TripDTO) TableName() string {
	return "trips"
}

// StopDTO represents the database structure for persisting stop entities.
// Links to the owning trip via foreign key; Sequence preserves the itinerary
// order the aggregate was built with.
type StopDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Sequence            int       `gorm:"not null"`
	Type                string    `gorm:"type:varchar(16);not null"`
	Status              int
	PassengerID         *uuid.UUID `gorm:"type:uuid"`
	AccessPointID       *uuid.UUID `gorm:"type:uuid"`
	PlaceID             *uuid.UUID `gorm:"type:uuid"`
	CapacityDelta       string     `gorm:"type:jsonb;not null"`
	DurationSeconds     int64      `gorm:"not null"`
	TimeWindows         string     `gorm:"type:jsonb;not null"`
	OperationalNotes    string
	ProcedureOverrides  *string `gorm:"type:jsonb"`
	Dependencies        *string `gorm:"type:jsonb"`
	LocationLatitude    *float64
	LocationLongitude   *float64
	Outcome             int
	ActualArrivalTime   *time.Time
	ActualDepartureTime *time.Time
}

// TableName specifies the database table name for stop entities.
// Overrides GORM's default naming convention to use "stops".
func (StopDTO) TableName() string {
	return "stops"
}

// timeWindowJSON is the jsonb element for a stop's service window.
type timeWindowJSON struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
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

// fromDomain converts a trip domain aggregate to its database representation.
// Maps all aggregate state including the stop itinerary and the optional
// assignment, authorization, and post-trip directive references.
func fromDomain(aggregate *trip.Trip) (TripDTO, error) {
	requirements, err := marshalVector(aggregate.CapacityRequirements())
	if err != nil {
		return TripDTO{}, err
	}

	constraints, err := marshalConstraints(aggregate.Constraints())
	if err != nil {
		return TripDTO{}, err
	}

	var waitSeconds *int64
	var nextTripID *uuid.UUID
	if directive := aggregate.PostTripDirective(); directive != nil {
		seconds := int64(directive.Duration / time.Second)
		waitSeconds = &seconds
		raw := directive.NextTripID.Bytes()
		nextTripID = &raw
	}

	tripID := aggregate.ID().Bytes()
	stops := make([]StopDTO, 0, len(aggregate.Stops()))
	for i, stop := range aggregate.Stops() {
		stopDTO, stopErr := stopFromDomain(stop, tripID, i)
		if stopErr != nil {
			return TripDTO{}, stopErr
		}
		stops = append(stops, stopDTO)
	}

	return TripDTO{
		ID:                   tripID,
		PassengerID:          aggregate.Passenger().Bytes(),
		FundingSourceID:      aggregate.FundingSource().Bytes(),
		JourneyID:            optionalUUID(aggregate.Journey()),
		AuthorizationID:      optionalUUID(aggregate.Authorization()),
		RouteManifestID:      optionalUUID(aggregate.RouteManifest()),
		PickupType:           string(aggregate.PickupType()),
		CapacityRequirements: requirements,
		Constraints:          constraints,
		PostTripWaitSeconds:  waitSeconds,
		PostTripNextTripID:   nextTripID,
		DriverID:             optionalUUID(aggregate.Driver()),
		VehicleID:            optionalUUID(aggregate.Vehicle()),
		RejectionReason:      aggregate.RejectionReason(),
		CancellationReason:   aggregate.CancellationReason(),
		Status:               int(aggregate.Status()),
		Version:              aggregate.Version(),
		Stops:                stops,
	}, nil
}

// toDomain converts a database DTO to a trip domain aggregate.
// Reconstructs the complete aggregate including its stops using RestoreTrip.
func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	passengerID, err := kernel.UUIDFromBytes(dto.PassengerID[:])
	if err != nil {
		return nil, err
	}
	fundingSourceID, err := kernel.UUIDFromBytes(dto.FundingSourceID[:])
	if err != nil {
		return nil, err
	}

	journeyID, err := optionalKernelUUID(dto.JourneyID)
	if err != nil {
		return nil, err
	}
	authorizationID, err := optionalKernelUUID(dto.AuthorizationID)
	if err != nil {
		return nil, err
	}
	routeManifestID, err := optionalKernelUUID(dto.RouteManifestID)
	if err != nil {
		return nil, err
	}
	driverID, err := optionalKernelUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalKernelUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	requirements, err := unmarshalVector(dto.CapacityRequirements)
	if err != nil {
		return nil, err
	}

	constraints, err := unmarshalConstraints(dto.Constraints)
	if err != nil {
		return nil, err
	}

	var directive *trip.PostTripDirective
	if dto.PostTripWaitSeconds != nil && dto.PostTripNextTripID != nil {
		nextTripID, nextErr := kernel.UUIDFromBytes((*dto.PostTripNextTripID)[:])
		if nextErr != nil {
			return nil, nextErr
		}
		restored, directiveErr := trip.NewPostTripDirective(
			time.Duration(*dto.PostTripWaitSeconds)*time.Second, nextTripID)
		if directiveErr != nil {
			return nil, directiveErr
		}
		directive = &restored
	}

	stops := make([]*trip.Stop, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		stop, stopErr := stopToDomain(stopDTO)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	return trip.RestoreTrip(
		id,
		passengerID,
		fundingSourceID,
		journeyID,
		authorizationID,
		routeManifestID,
		trip.PickupType(dto.PickupType),
		requirements,
		stops,
		constraints,
		directive,
		driverID,
		vehicleID,
		dto.RejectionReason,
		dto.CancellationReason,
		trip.Status(dto.Status),
		dto.Version,
	)
}

// stopFromDomain converts a stop entity to its database representation.
func stopFromDomain(stop *trip.Stop, tripID uuid.UUID, sequence int) (StopDTO, error) {
	delta, err := marshalVector(stop.CapacityDelta())
	if err != nil {
		return StopDTO{}, err
	}

	windows := make([]timeWindowJSON, 0, len(stop.TimeWindows()))
	for _, window := range stop.TimeWindows() {
		windows = append(windows, timeWindowJSON{
			Earliest: window.Earliest(),
			Latest:   window.Latest(),
		})
	}
	windowsRaw, err := json.Marshal(windows)
	if err != nil {
		return StopDTO{}, err
	}

	var overrides *string
	if stop.ProcedureOverrides() != nil {
		raw, overridesErr := json.Marshal(stop.ProcedureOverrides())
		if overridesErr != nil {
			return StopDTO{}, overridesErr
		}
		encoded := string(raw)
		overrides = &encoded
	}

	var dependencies *string
	if len(stop.Dependencies()) > 0 {
		ids := make([]string, 0, len(stop.Dependencies()))
		for _, dependency := range stop.Dependencies() {
			ids = append(ids, dependency.PrecedingStopID.String())
		}
		raw, depsErr := json.Marshal(ids)
		if depsErr != nil {
			return StopDTO{}, depsErr
		}
		encoded := string(raw)
		dependencies = &encoded
	}

	var latitude, longitude *float64
	if location := stop.Location(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		latitude = &lat
		longitude = &lng
	}

	var accessPointID, placeID *uuid.UUID
	if stop.Type().IsPassengerType() {
		apRaw := stop.AccessPoint().Bytes()
		placeRaw := stop.Place().Bytes()
		accessPointID = &apRaw
		placeID = &placeRaw
	}

	return StopDTO{
		ID:                  stop.ID().Bytes(),
		TripID:              tripID,
		Sequence:            sequence,
		Type:                string(stop.Type()),
		Status:              int(stop.Status()),
		PassengerID:         optionalUUID(stop.Passenger()),
		AccessPointID:       accessPointID,
		PlaceID:             placeID,
		CapacityDelta:       delta,
		DurationSeconds:     int64(stop.Duration() / time.Second),
		TimeWindows:         string(windowsRaw),
		OperationalNotes:    stop.OperationalNotes(),
		ProcedureOverrides:  overrides,
		Dependencies:        dependencies,
		LocationLatitude:    latitude,
		LocationLongitude:   longitude,
		Outcome:             int(stop.Outcome()),
		ActualArrivalTime:   stop.ActualArrivalTime(),
		ActualDepartureTime: stop.ActualDepartureTime(),
	}, nil
}

// stopToDomain converts a stop DTO to a domain entity.
// Uses RestoreStop to reconstruct the entity with its persisted state.
func stopToDomain(dto StopDTO) (*trip.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	passengerID, err := optionalKernelUUID(dto.PassengerID)
	if err != nil {
		return nil, err
	}

	var accessPointID, placeID kernel.UUID
	if dto.AccessPointID != nil {
		accessPointID, err = kernel.UUIDFromBytes((*dto.AccessPointID)[:])
		if err != nil {
			return nil, err
		}
	}
	if dto.PlaceID != nil {
		placeID, err = kernel.UUIDFromBytes((*dto.PlaceID)[:])
		if err != nil {
			return nil, err
		}
	}

	delta, err := unmarshalVector(dto.CapacityDelta)
	if err != nil {
		return nil, err
	}

	var windowDTOs []timeWindowJSON
	if err = json.Unmarshal([]byte(dto.TimeWindows), &windowDTOs); err != nil {
		return nil, err
	}
	windows := make([]kernel.TimeWindow, 0, len(windowDTOs))
	for _, windowDTO := range windowDTOs {
		window, windowErr := kernel.NewTimeWindow(windowDTO.Earliest, windowDTO.Latest)
		if windowErr != nil {
			return nil, windowErr
		}
		windows = append(windows, window)
	}

	var location *kernel.GpsLocation
	if dto.LocationLatitude != nil && dto.LocationLongitude != nil {
		restored, locErr := kernel.NewGpsLocation(*dto.LocationLatitude, *dto.LocationLongitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &restored
	}

	stop, err := trip.RestoreStop(
		id,
		trip.StopType(dto.Type),
		trip.StopStatus(dto.Status),
		passengerID,
		accessPointID,
		placeID,
		delta,
		time.Duration(dto.DurationSeconds)*time.Second,
		windows,
		location,
		trip.StopOutcome(dto.Outcome),
		dto.ActualArrivalTime,
		dto.ActualDepartureTime,
	)
	if err != nil {
		return nil, err
	}

	stop.SetOperationalNotes(dto.OperationalNotes)

	if dto.ProcedureOverrides != nil {
		var overrides trip.ProcedureOverrides
		if err = json.Unmarshal([]byte(*dto.ProcedureOverrides), &overrides); err != nil {
			return nil, err
		}
		stop.SetProcedureOverrides(&overrides)
	}

	if dto.Dependencies != nil {
		var ids []string
		if err = json.Unmarshal([]byte(*dto.Dependencies), &ids); err != nil {
			return nil, err
		}
		dependencies := make([]trip.StopDependency, 0, len(ids))
		for _, raw := range ids {
			precedingID, depErr := kernel.UUIDFromString(raw)
			if depErr != nil {
				return nil, depErr
			}
			dependencies = append(dependencies, trip.StopDependency{PrecedingStopID: precedingID})
		}
		stop.SetDependencies(dependencies)
	}

	return stop, nil
}

// marshalVector encodes a capacity vector as a jsonb document.
func marshalVector(v capacity.Vector) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// unmarshalVector decodes a capacity vector from its jsonb document.
func unmarshalVector(s string) (capacity.Vector, error) {
	var v capacity.Vector
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	if v == nil {
		v = capacity.Zero()
	}
	return v, nil
}

// marshalConstraints encodes trip constraints as a jsonb document.
// Returns nil when the trip carries no constraints.
func marshalConstraints(constraints *constraint.TripConstraints) (*string, error) {
	if constraints == nil {
		return nil, nil
	}

	doc := tripConstraintsJSON{
		Preferences:  setToJSON(constraints.Preferences),
		Requirements: setToJSON(constraints.Requirements),
		Prohibitions: setToJSON(constraints.Prohibitions),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	encoded := string(raw)
	return &encoded, nil
}

// unmarshalConstraints decodes trip constraints from their jsonb document.
func unmarshalConstraints(s *string) (*constraint.TripConstraints, error) {
	if s == nil {
		return nil, nil
	}

	var doc tripConstraintsJSON
	if err := json.Unmarshal([]byte(*s), &doc); err != nil {
		return nil, err
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

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
