package standingorder

import (
	"errors"
	"fmt"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/pkg/errs"
)

// ErrNonPassengerStopTemplate is returned when a journey template contains a
// stop template that is not a pickup or dropoff. Driver-service stops are
// inserted by dispatch, never generated from templates.
var ErrNonPassengerStopTemplate = errors.New("journey templates only permit pickup and dropoff stops")

// TimeWindowTemplate is a recurring service interval expressed as offsets
// from midnight of the occurrence date, so the same template projects onto
// any generated date.
type TimeWindowTemplate struct {
	// StartOffset is the earliest service time, from midnight.
	StartOffset time.Duration

	// EndOffset is the latest service time, from midnight.
	EndOffset time.Duration
}

// Validate checks that the interval is well-formed within a single day.
func (t TimeWindowTemplate) Validate() error {
	if t.StartOffset < 0 || t.EndOffset <= t.StartOffset {
		return errs.NewValueIsInvalidErrorWithCause(
			"timeWindowTemplate",
			fmt.Errorf("window [%s, %s] is not a valid interval", t.StartOffset, t.EndOffset),
		)
	}
	return nil
}

// On projects the template onto a concrete occurrence date, producing an
// absolute time window anchored at that day's midnight.
func (t TimeWindowTemplate) On(date time.Time) (kernel.TimeWindow, error) {
	if err := t.Validate(); err != nil {
		return kernel.TimeWindow{}, err
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return kernel.NewTimeWindow(midnight.Add(t.StartOffset), midnight.Add(t.EndOffset))
}

// StopTemplate is the blueprint for one generated passenger stop.
type StopTemplate struct {
	// Type must be Pickup or Dropoff.
	Type trip.StopType

	// AccessPointID and PlaceID locate the generated stop.
	AccessPointID kernel.UUID
	PlaceID       kernel.UUID

	// Duration is the planned on-site service time.
	Duration time.Duration

	// TimeWindows are the recurring service intervals (at least one).
	TimeWindows []TimeWindowTemplate

	// ProcedureOverrides adjusts the inherited procedure set for this stop.
	ProcedureOverrides *trip.ProcedureOverrides
}

// Validate checks the stop template is complete and passenger-typed.
func (t StopTemplate) Validate() error {
	if !t.Type.IsPassengerType() {
		return fmt.Errorf("%w: got %s", ErrNonPassengerStopTemplate, t.Type)
	}
	if err := t.AccessPointID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accessPointID", err)
	}
	if err := t.PlaceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("placeID", err)
	}
	if t.Duration < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"duration", fmt.Errorf("service duration cannot be negative, got %s", t.Duration))
	}
	if len(t.TimeWindows) == 0 {
		return errs.NewValueIsRequiredError("timeWindows")
	}
	for _, window := range t.TimeWindows {
		if err := window.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LegTemplate is the blueprint for one generated journey leg and its trip.
type LegTemplate struct {
	// TransitionToNext is the directive projected onto the generated trip as
	// a post-trip directive pointing at the next leg's trip.
	TransitionToNext *journey.LegTransition

	// Stops are the blueprints for the generated trip's itinerary.
	Stops []StopTemplate
}

// Validate checks the leg template has a usable itinerary.
func (t LegTemplate) Validate() error {
	if len(t.Stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}
	for _, stop := range t.Stops {
		if err := stop.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// JourneyTemplate is the blueprint of the journey generated for each
// occurrence of a standing order. Funding source, capacity requirements, and
// constraints are inherited by every generated trip.
type JourneyTemplate struct {
	// FundingSourceID is who pays for every generated trip.
	FundingSourceID kernel.UUID

	// CapacityRequirements is the occupancy each generated trip demands.
	CapacityRequirements capacity.Vector

	// Constraints is an optional assignment-rule override for generated trips.
	Constraints *constraint.TripConstraints

	// Legs are the blueprints of the journey's segments, in order.
	Legs []LegTemplate
}

// Validate checks the template can produce a well-formed journey.
func (t JourneyTemplate) Validate() error {
	if err := t.FundingSourceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("fundingSourceID", err)
	}
	if t.CapacityRequirements.IsZero() {
		return errs.NewValueIsRequiredError("capacityRequirements")
	}
	if t.Constraints != nil {
		if err := t.Constraints.Validate(); err != nil {
			return err
		}
	}
	if len(t.Legs) == 0 {
		return errs.NewValueIsRequiredError("legs")
	}
	for _, leg := range t.Legs {
		if err := leg.Validate(); err != nil {
			return err
		}
	}
	if t.Legs[len(t.Legs)-1].TransitionToNext != nil {
		return journey.ErrDanglingTransition
	}
	return nil
}
