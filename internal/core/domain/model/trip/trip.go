package trip

import (
	"errors"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

// EntityType values stamped on domain events emitted by the aggregate.
const (
	tripEntityType = "Trip"
	stopEntityType = "Stop"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip instance was not created
	// through the NewTrip or RestoreTrip factory methods.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip or RestoreTrip constructor")

	// ErrStopsNotFinished is returned when a trip is completed while some of
	// its stops are still in a non-terminal status.
	ErrStopsNotFinished = errors.New("trip has unfinished stops")

	// ErrNoCompletedStops is returned when a trip is completed without a
	// single completed stop. Such trips end as Incomplete instead.
	ErrNoCompletedStops = errors.New("trip has no completed stops")
)

// Trip is the aggregate root for a single vehicle ride serving one passenger
// booking. It owns its ordered stops and keeps the trip status consistent
// with their lifecycle.
//
// Trip follows these invariants:
//   - Must have a valid unique identifier, passenger, and funding source
//   - Capacity requirements describe the peak occupancy the trip demands
//   - Passenger stop deltas must conserve capacity before scheduling
//   - Status transitions follow the Status state machine
//   - Can only be created through NewTrip or RestoreTrip
//
// Every transition takes the acting user's ID and records a DomainEvent, so
// the full audit trail of who moved the trip through its lifecycle is
// available to the application layer.
type Trip struct {
	// id is the unique identifier for the trip
	id kernel.UUID

	// passengerID is the primary passenger being transported
	passengerID kernel.UUID

	// fundingSourceID identifies who pays for the trip
	fundingSourceID kernel.UUID

	// journeyID links the trip to its parent journey (nil for ad-hoc trips)
	journeyID *kernel.UUID

	// authorizationID references the funding authorization (nil if not required)
	authorizationID *kernel.UUID

	// routeManifestID is the optimizer's route the trip was placed on
	routeManifestID *kernel.UUID

	// pickupType defines fixed-time versus passenger-initiated pickup
	pickupType PickupType

	// capacityRequirements is the occupancy the trip demands, e.g. one
	// wheelchair space plus one ambulatory seat for a passenger and escort
	capacityRequirements capacity.Vector

	// stops is the ordered itinerary, owned by the aggregate
	stops []*Stop

	// constraints is an optional trip-level override of assignment rules
	constraints *constraint.TripConstraints

	// postTripDirective tells the crew what to do after completion
	postTripDirective *PostTripDirective

	// driverID and vehicleID are set when the trip is scheduled
	driverID  *kernel.UUID
	vehicleID *kernel.UUID

	// rejectionReason explains a Rejected status
	rejectionReason string

	// cancellationReason explains a Canceled status
	cancellationReason string

	// status is the current state in the trip lifecycle
	status Status

	// version supports optimistic concurrency control in persistence
	version int

	// domainEvents accumulates lifecycle events until published
	domainEvents []kernel.DomainEvent

	// isConstructed ensures the trip was created via a factory method
	isConstructed bool
}

// NewTrip creates a new Trip in PendingApproval status.
//
// Parameters:
//   - id: Unique identifier for the trip (must be valid UUID)
//   - passengerID: The primary passenger (must be valid UUID)
//   - fundingSourceID: Who pays for the trip (must be valid UUID)
//   - pickupType: Scheduled or WillCall
//   - capacityRequirements: Occupancy demanded by the booking (must be non-zero)
//   - stops: The ordered itinerary (at least one stop)
//
// Returns:
//   - *Trip: The created trip if all validations pass
//   - error: A joined validation error listing every invalid parameter
//
// Example:
//
//	tripId := kernel.NewUUID()
//	requirements, _ := capacity.NewRequirements(map[capacity.SpaceType]int{capacity.Wheelchair: 1})
//	trip, err := NewTrip(tripId, passengerId, fundingSourceId, PickupScheduled, requirements, stops)
//	if err != nil {
//	    // Handle validation error
//	}
//
// Optional fields (journey link, constraints, post-trip directive,
// authorization) are attached afterwards through their setters.
func NewTrip(
	id kernel.UUID,
	passengerID kernel.UUID,
	fundingSourceID kernel.UUID,
	pickupType PickupType,
	capacityRequirements capacity.Vector,
	stops []*Stop,
) (*Trip, error) {
	trip := &Trip{
		status:        PendingApproval,
		isConstructed: true,
	}

	if err := errors.Join(
		trip.setID(id),
		trip.setPassengerID(passengerID),
		trip.setFundingSourceID(fundingSourceID),
		trip.setPickupType(pickupType),
		trip.setCapacityRequirements(capacityRequirements),
		trip.setStops(stops),
	); err != nil {
		return nil, err
	}

	return trip, nil
}

// RestoreTrip reconstructs a Trip from persistence with all fields.
// Used by repositories; not for creating new trips.
func RestoreTrip(
	id kernel.UUID,
	passengerID kernel.UUID,
	fundingSourceID kernel.UUID,
	journeyID *kernel.UUID,
	authorizationID *kernel.UUID,
	routeManifestID *kernel.UUID,
	pickupType PickupType,
	capacityRequirements capacity.Vector,
	stops []*Stop,
	constraints *constraint.TripConstraints,
	postTripDirective *PostTripDirective,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	rejectionReason string,
	cancellationReason string,
	status Status,
	version int,
) (*Trip, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version")
	}

	trip := &Trip{
		journeyID:          journeyID,
		authorizationID:    authorizationID,
		routeManifestID:    routeManifestID,
		constraints:        constraints,
		postTripDirective:  postTripDirective,
		driverID:           driverID,
		vehicleID:          vehicleID,
		rejectionReason:    rejectionReason,
		cancellationReason: cancellationReason,
		status:             status,
		version:            version,
		isConstructed:      true,
	}

	if err := errors.Join(
		trip.setID(id),
		trip.setPassengerID(passengerID),
		trip.setFundingSourceID(fundingSourceID),
		trip.setPickupType(pickupType),
		trip.setCapacityRequirements(capacityRequirements),
		trip.setStops(stops),
	); err != nil {
		return nil, err
	}

	return trip, nil
}

// Validate ensures the Trip instance was properly constructed through a
// factory method.
func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

// IsEqual compares two trips by their unique identifiers.
func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the trip's unique identifier.
func (t *Trip) ID() kernel.UUID {
	return t.id
}

// Passenger returns the primary passenger's ID.
func (t *Trip) Passenger() kernel.UUID {
	return t.passengerID
}

// FundingSource returns the funding source's ID.
func (t *Trip) FundingSource() kernel.UUID {
	return t.fundingSourceID
}

// Journey returns the parent journey's ID, or nil for ad-hoc trips.
func (t *Trip) Journey() *kernel.UUID {
	return t.journeyID
}

// Authorization returns the funding authorization's ID, if any.
func (t *Trip) Authorization() *kernel.UUID {
	return t.authorizationID
}

// RouteManifest returns the route the trip was scheduled onto, if any.
func (t *Trip) RouteManifest() *kernel.UUID {
	return t.routeManifestID
}

// PickupType returns the trip's pickup type.
func (t *Trip) PickupType() PickupType {
	return t.pickupType
}

// CapacityRequirements returns the occupancy the trip demands.
func (t *Trip) CapacityRequirements() capacity.Vector {
	return t.capacityRequirements.Clone()
}

// Stops returns the trip's ordered itinerary.
func (t *Trip) Stops() []*Stop {
	return t.stops
}

// Constraints returns the trip-level assignment constraints, if any.
func (t *Trip) Constraints() *constraint.TripConstraints {
	return t.constraints
}

// PostTripDirective returns the after-completion instruction, if any.
func (t *Trip) PostTripDirective() *PostTripDirective {
	return t.postTripDirective
}

// Driver returns the assigned driver's ID. Nil until scheduled.
func (t *Trip) Driver() *kernel.UUID {
	return t.driverID
}

// Vehicle returns the assigned vehicle's ID. Nil until scheduled.
func (t *Trip) Vehicle() *kernel.UUID {
	return t.vehicleID
}

// RejectionReason returns why the trip was rejected, if it was.
func (t *Trip) RejectionReason() string {
	return t.rejectionReason
}

// CancellationReason returns why the trip was canceled, if it was.
func (t *Trip) CancellationReason() string {
	return t.cancellationReason
}

// Status returns the current status of the trip.
func (t *Trip) Status() Status {
	return t.status
}

// Version returns the optimistic concurrency version of the trip.
func (t *Trip) Version() int {
	return t.version
}

// SetJourney links the trip to its parent journey.
func (t *Trip) SetJourney(journeyID kernel.UUID) error {
	if err := journeyID.Validate(); err != nil {
		return err
	}
	t.journeyID = &journeyID
	return nil
}

// SetAuthorization attaches a funding authorization reference.
func (t *Trip) SetAuthorization(authorizationID kernel.UUID) error {
	if err := authorizationID.Validate(); err != nil {
		return err
	}
	t.authorizationID = &authorizationID
	return nil
}

// SetConstraints attaches a trip-level constraints override.
func (t *Trip) SetConstraints(constraints constraint.TripConstraints) error {
	if err := constraints.Validate(); err != nil {
		return err
	}
	t.constraints = &constraints
	return nil
}

// SetPostTripDirective attaches an after-completion instruction.
func (t *Trip) SetPostTripDirective(directive PostTripDirective) {
	t.postTripDirective = &directive
}

// DomainEvents returns the lifecycle events recorded since construction or
// the last ClearDomainEvents call.
func (t *Trip) DomainEvents() []kernel.DomainEvent {
	return t.domainEvents
}

// ClearDomainEvents drops the recorded events after they are published.
func (t *Trip) ClearDomainEvents() {
	t.domainEvents = nil
}

// Approve moves the trip from PendingApproval to Approved.
func (t *Trip) Approve(actorID kernel.UUID) error {
	from := t.status
	newStatus, err := t.status.Approve()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// Reject moves the trip from PendingApproval to Rejected and records the
// reason.
func (t *Trip) Reject(actorID kernel.UUID, reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	from := t.status
	newStatus, err := t.status.Reject()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.rejectionReason = reason
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// Schedule assigns a driver, vehicle, and route to the trip and moves it from
// Approved to Scheduled.
//
// Scheduling enforces the operational preconditions:
//   - the passenger stop deltas must form a balanced capacity sequence
//     (no underflow, net zero at the end)
//   - the trip's constraints override, when present, must be internally
//     consistent
//
// Returns an error and leaves the trip untouched if any precondition fails.
func (t *Trip) Schedule(actorID, driverID, vehicleID, routeManifestID kernel.UUID) error {
	if err := errors.Join(
		driverID.Validate(),
		vehicleID.Validate(),
		routeManifestID.Validate(),
	); err != nil {
		return err
	}

	if err := capacity.ValidateSequence(t.passengerStopDeltas()); err != nil {
		return err
	}
	if t.constraints != nil {
		if err := t.constraints.Validate(); err != nil {
			return err
		}
	}

	from := t.status
	newStatus, err := t.status.Schedule()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.driverID = &driverID
	t.vehicleID = &vehicleID
	t.routeManifestID = &routeManifestID
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// BeginExecution moves the trip from Scheduled to InProgress. Normally driven
// by the first stop dispatch rather than called directly.
func (t *Trip) BeginExecution(actorID kernel.UUID) error {
	from := t.status
	newStatus, err := t.status.BeginExecution()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// Complete moves the trip from InProgress to Completed.
//
// Preconditions: every stop is in a terminal status and at least one stop
// completed. A trip whose stops all ended in NoShow or Canceled is closed
// through MarkIncomplete instead.
func (t *Trip) Complete(actorID kernel.UUID) error {
	from := t.status
	newStatus, err := t.status.Complete()
	if err != nil {
		return err
	}

	completed := 0
	for _, stop := range t.stops {
		if !stop.Status().IsTerminal() {
			return ErrStopsNotFinished
		}
		if stop.Status() == StopCompleted {
			completed++
		}
	}
	if completed == 0 {
		return ErrNoCompletedStops
	}

	t.status = newStatus
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// MarkIncomplete moves the trip from InProgress to Incomplete and cancels any
// stops still pending execution.
func (t *Trip) MarkIncomplete(actorID kernel.UUID) error {
	from := t.status
	newStatus, err := t.status.MarkIncomplete()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.cancelRemainingStops()
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// Cancel calls the trip off before execution begins, cancels its stops, and
// records the reason.
func (t *Trip) Cancel(actorID kernel.UUID, reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	from := t.status
	newStatus, err := t.status.Cancel()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.cancellationReason = reason
	t.cancelRemainingStops()
	t.recordTransition(from, newStatus, actorID)
	return nil
}

// DispatchStop moves the identified stop from Pending to Assigned. The first
// dispatch of a Scheduled trip also begins trip execution.
func (t *Trip) DispatchStop(actorID, stopID kernel.UUID) error {
	stop, err := t.findStop(stopID)
	if err != nil {
		return err
	}

	if t.status == Scheduled {
		if err := t.BeginExecution(actorID); err != nil {
			return err
		}
	}
	if t.status != InProgress {
		return tripTransitionError(t.status, InProgress)
	}

	from := stop.Status()
	if err := stop.Dispatch(); err != nil {
		return err
	}
	t.recordStopTransition(stop, from, actorID)
	return nil
}

// DepartForStop moves the identified stop from Assigned to EnRoute.
func (t *Trip) DepartForStop(actorID, stopID kernel.UUID) error {
	stop, err := t.findStop(stopID)
	if err != nil {
		return err
	}

	from := stop.Status()
	if err := stop.Depart(); err != nil {
		return err
	}
	t.recordStopTransition(stop, from, actorID)
	return nil
}

// ArriveAtStop moves the identified stop from EnRoute to Arrived and records
// the arrival time.
func (t *Trip) ArriveAtStop(actorID, stopID kernel.UUID, at time.Time) error {
	stop, err := t.findStop(stopID)
	if err != nil {
		return err
	}

	from := stop.Status()
	if err := stop.Arrive(at); err != nil {
		return err
	}
	t.recordStopTransition(stop, from, actorID)
	return nil
}

// CompleteStop moves the identified stop from Arrived to Completed with the
// given outcome and departure time. When this was the last unfinished stop
// the trip closes as well; a VehicleBrokeDown outcome halts the trip as
// Incomplete regardless of remaining stops.
func (t *Trip) CompleteStop(actorID, stopID kernel.UUID, outcome StopOutcome, at time.Time) error {
	stop, err := t.findStop(stopID)
	if err != nil {
		return err
	}

	from := stop.Status()
	if err := stop.Complete(outcome, at); err != nil {
		return err
	}
	t.recordStopTransition(stop, from, actorID)

	if outcome == OutcomeVehicleBrokeDown {
		return t.MarkIncomplete(actorID)
	}
	return t.closeIfFinished(actorID)
}

// MarkStopNoShow moves the identified stop from Arrived to NoShow. When this
// was the last unfinished stop the trip closes as well.
func (t *Trip) MarkStopNoShow(actorID, stopID kernel.UUID, at time.Time) error {
	stop, err := t.findStop(stopID)
	if err != nil {
		return err
	}

	from := stop.Status()
	if err := stop.MarkNoShow(at); err != nil {
		return err
	}
	t.recordStopTransition(stop, from, actorID)
	return t.closeIfFinished(actorID)
}

// CancelStop moves the identified stop to Canceled from any non-terminal
// status. When this was the last unfinished stop of an in-progress trip the
// trip closes as well.
func (t *Trip) CancelStop(actorID, stopID kernel.UUID) error {
	stop, err := t.findStop(stopID)
	if err != nil {
		return err
	}

	from := stop.Status()
	if err := stop.Cancel(); err != nil {
		return err
	}
	t.recordStopTransition(stop, from, actorID)
	return t.closeIfFinished(actorID)
}

// closeIfFinished closes an in-progress trip once its last stop reaches a
// terminal status: Completed when at least one stop completed, Incomplete
// when none did. A no-op while any stop is still unfinished or the trip is
// not executing.
func (t *Trip) closeIfFinished(actorID kernel.UUID) error {
	if t.status != InProgress {
		return nil
	}

	completed := 0
	for _, stop := range t.stops {
		if !stop.Status().IsTerminal() {
			return nil
		}
		if stop.Status() == StopCompleted {
			completed++
		}
	}

	if completed == 0 {
		return t.MarkIncomplete(actorID)
	}
	return t.Complete(actorID)
}

// findStop locates an owned stop by ID.
func (t *Trip) findStop(stopID kernel.UUID) (*Stop, error) {
	for _, stop := range t.stops {
		if stop.ID().IsEqual(stopID) {
			return stop, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stopID", stopID)
}

// passengerStopDeltas projects the ordered capacity deltas of passenger stops.
func (t *Trip) passengerStopDeltas() []capacity.Vector {
	deltas := make([]capacity.Vector, 0, len(t.stops))
	for _, stop := range t.stops {
		if stop.Type().IsPassengerType() {
			deltas = append(deltas, stop.CapacityDelta())
		}
	}
	return deltas
}

// cancelRemainingStops cancels every stop that has not reached a terminal
// status yet. Used when the trip itself is canceled or marked incomplete.
func (t *Trip) cancelRemainingStops() {
	for _, stop := range t.stops {
		if !stop.Status().IsTerminal() {
			// Cancel from a non-terminal status cannot fail
			_ = stop.Cancel()
		}
	}
}

// recordTransition stamps a trip-level domain event.
func (t *Trip) recordTransition(from, to Status, actorID kernel.UUID) {
	event, err := kernel.NewDomainEvent(tripEntityType, t.id, from.String(), to.String(), actorID)
	if err != nil {
		return
	}
	t.domainEvents = append(t.domainEvents, event)
}

// recordStopTransition stamps a stop-level domain event.
func (t *Trip) recordStopTransition(stop *Stop, from StopStatus, actorID kernel.UUID) {
	event, err := kernel.NewDomainEvent(stopEntityType, stop.ID(), from.String(), stop.Status().String(), actorID)
	if err != nil {
		return
	}
	t.domainEvents = append(t.domainEvents, event)
}

// setID validates and sets the trip's unique identifier.
// This is a private method used only during construction.
func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

// setPassengerID validates and sets the primary passenger reference.
func (t *Trip) setPassengerID(passengerID kernel.UUID) error {
	if err := passengerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("passengerID", err)
	}
	t.passengerID = passengerID
	return nil
}

// setFundingSourceID validates and sets the funding source reference.
func (t *Trip) setFundingSourceID(fundingSourceID kernel.UUID) error {
	if err := fundingSourceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("fundingSourceID", err)
	}
	t.fundingSourceID = fundingSourceID
	return nil
}

// setPickupType validates and sets the pickup type.
func (t *Trip) setPickupType(pickupType PickupType) error {
	if err := pickupType.Validate(); err != nil {
		return err
	}
	t.pickupType = pickupType
	return nil
}

// setCapacityRequirements validates and sets the demanded occupancy.
// Requirements must be non-zero: a trip that needs no space moves nobody.
func (t *Trip) setCapacityRequirements(requirements capacity.Vector) error {
	if requirements.IsZero() {
		return errs.NewValueIsRequiredError("capacityRequirements")
	}
	t.capacityRequirements = requirements.Clone()
	return nil
}

// setStops validates and sets the owned itinerary.
func (t *Trip) setStops(stops []*Stop) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}
	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return err
		}
	}
	t.stops = stops
	return nil
}
