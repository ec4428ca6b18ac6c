package trip

import (
	"errors"
	"fmt"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

var (
	// ErrStopIsNotConstructed is returned when a Stop instance was not created
	// through one of the factory methods.
	ErrStopIsNotConstructed = errors.New("Stop must be created via NewPassengerStop, NewDriverServiceStop, or RestoreStop")

	// ErrArrivalNotRecorded is returned when a stop is completed or marked as a
	// no-show before an actual arrival time was recorded.
	ErrArrivalNotRecorded = errors.New("stop has no recorded arrival time")
)

// Stop is an entity owned by the Trip aggregate. It represents a single
// scheduled event on the trip's itinerary: boarding or alighting a passenger,
// or servicing the driver and vehicle (break, refuel, maintenance, wait).
//
// A Stop is a tagged union over StopType. Passenger stops (Pickup, Dropoff)
// carry the passenger reference, the access point and place, the capacity
// delta, procedure overrides, and precedence dependencies. Driver-service
// stops carry only an optional location, since a break may have no fixed
// location until the driver initiates it.
//
// Stops progress through the StopStatus machine and accumulate an execution
// record: actual arrival and departure times and a StopOutcome once finished.
type Stop struct {
	// id is the unique identifier for the stop
	id kernel.UUID

	// stopType discriminates passenger vs driver-service stops
	stopType StopType

	// status is the current state in the stop lifecycle
	status StopStatus

	// duration is the planned on-site service time
	duration time.Duration

	// timeWindows are the acceptable service intervals (at least one)
	timeWindows []kernel.TimeWindow

	// operationalNotes are instructions for the driver executing the stop
	operationalNotes string

	// passengerID references the passenger being served; nil on
	// driver-service stops and on companion-only passenger stops
	passengerID *kernel.UUID

	// accessPointID and placeID locate a passenger stop
	accessPointID kernel.UUID
	placeID       kernel.UUID

	// capacityDelta is the signed change in vehicle occupancy at this stop
	capacityDelta capacity.Vector

	// procedureOverrides adjusts the inherited procedure set for this stop
	procedureOverrides *ProcedureOverrides

	// dependencies are precedence edges to stops that must occur first
	dependencies []StopDependency

	// location is the optional fixed position of a driver-service stop
	location *kernel.GpsLocation

	// outcome records how the stop concluded; zero until terminal
	outcome StopOutcome

	actualArrivalTime   *time.Time
	actualDepartureTime *time.Time

	// isConstructed ensures the stop was created via a factory method
	isConstructed bool
}

// NewPassengerStop creates a Pickup or Dropoff stop in Pending status.
//
// passengerID may be nil for companion-only stops. The capacity delta is the
// signed occupancy change the stop causes: positive dimensions at a pickup,
// negative at a dropoff. At least one time window is required.
//
// Returns the created stop, or a joined validation error listing every
// invalid parameter.
func NewPassengerStop(
	id kernel.UUID,
	stopType StopType,
	passengerID *kernel.UUID,
	accessPointID kernel.UUID,
	placeID kernel.UUID,
	capacityDelta capacity.Vector,
	duration time.Duration,
	timeWindows []kernel.TimeWindow,
) (*Stop, error) {
	if !stopType.IsPassengerType() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stopType", fmt.Errorf("%s is not a passenger stop type", stopType))
	}

	stop := &Stop{
		stopType:      stopType,
		status:        StopPending,
		capacityDelta: capacityDelta.Clone(),
		isConstructed: true,
	}

	if err := errors.Join(
		stop.setID(id),
		stop.setPassengerID(passengerID),
		stop.setAccessPointID(accessPointID),
		stop.setPlaceID(placeID),
		stop.setDuration(duration),
		stop.setTimeWindows(timeWindows),
	); err != nil {
		return nil, err
	}

	return stop, nil
}

// NewDriverServiceStop creates a Break, Refuel, Maintenance, or Wait stop in
// Pending status. location may be nil when the stop has no fixed position yet.
func NewDriverServiceStop(
	id kernel.UUID,
	stopType StopType,
	location *kernel.GpsLocation,
	duration time.Duration,
	timeWindows []kernel.TimeWindow,
) (*Stop, error) {
	if stopType.IsPassengerType() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stopType", fmt.Errorf("%s is not a driver-service stop type", stopType))
	}
	if err := stopType.Validate(); err != nil {
		return nil, err
	}

	stop := &Stop{
		stopType:      stopType,
		status:        StopPending,
		capacityDelta: capacity.Zero(),
		location:      location,
		isConstructed: true,
	}

	if err := errors.Join(
		stop.setID(id),
		stop.setDuration(duration),
		stop.setTimeWindows(timeWindows),
	); err != nil {
		return nil, err
	}

	return stop, nil
}

// RestoreStop reconstructs a Stop from persistence with all fields, including
// the execution record. Used by repositories; not for creating new stops.
func RestoreStop(
	id kernel.UUID,
	stopType StopType,
	status StopStatus,
	passengerID *kernel.UUID,
	accessPointID kernel.UUID,
	placeID kernel.UUID,
	capacityDelta capacity.Vector,
	duration time.Duration,
	timeWindows []kernel.TimeWindow,
	location *kernel.GpsLocation,
	outcome StopOutcome,
	actualArrivalTime *time.Time,
	actualDepartureTime *time.Time,
) (*Stop, error) {
	if err := errors.Join(stopType.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	stop := &Stop{
		stopType:            stopType,
		status:              status,
		capacityDelta:       capacityDelta.Clone(),
		location:            location,
		outcome:             outcome,
		actualArrivalTime:   actualArrivalTime,
		actualDepartureTime: actualDepartureTime,
		isConstructed:       true,
	}

	joins := []error{
		stop.setID(id),
		stop.setDuration(duration),
		stop.setTimeWindows(timeWindows),
	}
	if stopType.IsPassengerType() {
		joins = append(joins,
			stop.setPassengerID(passengerID),
			stop.setAccessPointID(accessPointID),
			stop.setPlaceID(placeID),
		)
	}
	if err := errors.Join(joins...); err != nil {
		return nil, err
	}

	return stop, nil
}

// Validate ensures the Stop instance was properly constructed through a
// factory method.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// IsEqual compares two stops by their unique identifiers.
func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the stop's unique identifier.
func (s *Stop) ID() kernel.UUID {
	return s.id
}

// Type returns the stop's type.
func (s *Stop) Type() StopType {
	return s.stopType
}

// Status returns the current status of the stop.
func (s *Stop) Status() StopStatus {
	return s.status
}

// Duration returns the planned on-site service time.
func (s *Stop) Duration() time.Duration {
	return s.duration
}

// TimeWindows returns the acceptable service intervals.
func (s *Stop) TimeWindows() []kernel.TimeWindow {
	return s.timeWindows
}

// OperationalNotes returns the driver-facing instructions for the stop.
func (s *Stop) OperationalNotes() string {
	return s.operationalNotes
}

// SetOperationalNotes replaces the driver-facing instructions.
func (s *Stop) SetOperationalNotes(notes string) {
	s.operationalNotes = notes
}

// Passenger returns the passenger being served. Nil on driver-service stops
// and companion-only stops.
func (s *Stop) Passenger() *kernel.UUID {
	return s.passengerID
}

// AccessPoint returns the access point of a passenger stop.
func (s *Stop) AccessPoint() kernel.UUID {
	return s.accessPointID
}

// Place returns the place of a passenger stop.
func (s *Stop) Place() kernel.UUID {
	return s.placeID
}

// CapacityDelta returns the signed occupancy change the stop causes.
// Driver-service stops always report a zero delta.
func (s *Stop) CapacityDelta() capacity.Vector {
	return s.capacityDelta.Clone()
}

// ProcedureOverrides returns the stop-level procedure adjustments, if any.
func (s *Stop) ProcedureOverrides() *ProcedureOverrides {
	return s.procedureOverrides
}

// SetProcedureOverrides attaches stop-level procedure adjustments.
func (s *Stop) SetProcedureOverrides(overrides *ProcedureOverrides) {
	s.procedureOverrides = overrides
}

// Dependencies returns the precedence edges of the stop.
func (s *Stop) Dependencies() []StopDependency {
	return s.dependencies
}

// SetDependencies replaces the precedence edges of the stop.
func (s *Stop) SetDependencies(deps []StopDependency) {
	s.dependencies = deps
}

// Location returns the fixed position of a driver-service stop, if any.
func (s *Stop) Location() *kernel.GpsLocation {
	return s.location
}

// Outcome returns how the stop concluded. Zero until the stop is terminal.
func (s *Stop) Outcome() StopOutcome {
	return s.outcome
}

// ActualArrivalTime returns the recorded arrival time, if any.
func (s *Stop) ActualArrivalTime() *time.Time {
	return s.actualArrivalTime
}

// ActualDepartureTime returns the recorded departure time, if any.
func (s *Stop) ActualDepartureTime() *time.Time {
	return s.actualDepartureTime
}

// Dispatch moves the stop from Pending to Assigned when a crew takes it on.
func (s *Stop) Dispatch() error {
	newStatus, err := s.status.Dispatch()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// Depart moves the stop from Assigned to EnRoute when the vehicle starts
// driving toward it.
func (s *Stop) Depart() error {
	newStatus, err := s.status.Depart()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// Arrive moves the stop from EnRoute to Arrived and records the actual
// arrival time.
func (s *Stop) Arrive(at time.Time) error {
	newStatus, err := s.status.Arrive()
	if err != nil {
		return err
	}

	s.status = newStatus
	arrivedAt := at.UTC()
	s.actualArrivalTime = &arrivedAt
	return nil
}

// Complete moves the stop from Arrived to Completed, records the actual
// departure time, and stamps the outcome.
//
// Returns ErrArrivalNotRecorded if no arrival time was recorded first.
func (s *Stop) Complete(outcome StopOutcome, at time.Time) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	if s.actualArrivalTime == nil {
		return ErrArrivalNotRecorded
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.outcome = outcome
	departedAt := at.UTC()
	s.actualDepartureTime = &departedAt
	return nil
}

// MarkNoShow moves the stop from Arrived to NoShow. The crew must have
// arrived and waited before declaring a no-show, so an arrival time is
// required.
func (s *Stop) MarkNoShow(at time.Time) error {
	if s.actualArrivalTime == nil {
		return ErrArrivalNotRecorded
	}

	newStatus, err := s.status.MarkNoShow()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.outcome = OutcomePassengerNoShow
	departedAt := at.UTC()
	s.actualDepartureTime = &departedAt
	return nil
}

// Cancel moves the stop to Canceled from any non-terminal status.
func (s *Stop) Cancel() error {
	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// setID validates and sets the stop's unique identifier.
// This is a private method used only during construction.
func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// setPassengerID validates and sets the optional passenger reference.
func (s *Stop) setPassengerID(passengerID *kernel.UUID) error {
	if passengerID == nil {
		return nil
	}
	if err := passengerID.Validate(); err != nil {
		return err
	}
	s.passengerID = passengerID
	return nil
}

// setAccessPointID validates and sets the access point reference.
func (s *Stop) setAccessPointID(accessPointID kernel.UUID) error {
	if err := accessPointID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accessPointID", err)
	}
	s.accessPointID = accessPointID
	return nil
}

// setPlaceID validates and sets the place reference.
func (s *Stop) setPlaceID(placeID kernel.UUID) error {
	if err := placeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("placeID", err)
	}
	s.placeID = placeID
	return nil
}

// setDuration validates and sets the planned service time.
func (s *Stop) setDuration(duration time.Duration) error {
	if duration < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"duration", fmt.Errorf("service duration cannot be negative, got %s", duration))
	}
	s.duration = duration
	return nil
}

// setTimeWindows validates and sets the service intervals.
func (s *Stop) setTimeWindows(windows []kernel.TimeWindow) error {
	if len(windows) == 0 {
		return errs.NewValueIsRequiredError("timeWindows")
	}
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	s.timeWindows = windows
	return nil
}
