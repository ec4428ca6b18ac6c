package journey

import (
	"errors"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

var (
	// ErrJourneyIsNotConstructed is returned when a Journey instance was not
	// created through the NewJourney or RestoreJourney factory methods.
	ErrJourneyIsNotConstructed = errors.New("Journey must be created via NewJourney or RestoreJourney constructor")

	// ErrDanglingTransition is returned when the last leg of a journey
	// carries a transition directive. There is no next leg to transition to.
	ErrDanglingTransition = errors.New("last leg cannot carry a transition directive")
)

// Journey is the aggregate root for a sequence of related trips forming a
// single passenger errand: a round trip, a multi-destination outing, or a
// single one-way ride.
//
// Journey follows these invariants:
//   - Must have a valid unique identifier and passenger
//   - Must contain at least one leg
//   - The last leg never carries a transition directive
//   - Can only be created through NewJourney or RestoreJourney
type Journey struct {
	// id is the unique identifier for the journey
	id kernel.UUID

	// passengerID is the passenger the journey serves
	passengerID kernel.UUID

	// legs is the ordered sequence of segments
	legs []Leg

	// name is an optional display label, e.g. "Wednesday dialysis"
	name string

	// bookingDate is when the journey was booked or generated
	bookingDate time.Time

	// sourceStandingOrderID links back to the recurring template the journey
	// was generated from; nil for ad-hoc journeys
	sourceStandingOrderID *kernel.UUID

	// isConstructed ensures the journey was created via a factory method
	isConstructed bool
}

// NewJourney creates a new Journey.
//
// Returns a joined validation error if the identifier or passenger is
// invalid, the leg list is empty, or the last leg carries a transition
// directive.
func NewJourney(
	id kernel.UUID,
	passengerID kernel.UUID,
	legs []Leg,
	bookingDate time.Time,
) (*Journey, error) {
	journey := &Journey{
		isConstructed: true,
	}

	if err := errors.Join(
		journey.setID(id),
		journey.setPassengerID(passengerID),
		journey.setLegs(legs),
		journey.setBookingDate(bookingDate),
	); err != nil {
		return nil, err
	}

	return journey, nil
}

// RestoreJourney reconstructs a Journey from persistence with all fields.
// Used by repositories; not for creating new journeys.
func RestoreJourney(
	id kernel.UUID,
	passengerID kernel.UUID,
	legs []Leg,
	name string,
	bookingDate time.Time,
	sourceStandingOrderID *kernel.UUID,
) (*Journey, error) {
	journey, err := NewJourney(id, passengerID, legs, bookingDate)
	if err != nil {
		return nil, err
	}

	journey.name = name
	journey.sourceStandingOrderID = sourceStandingOrderID
	return journey, nil
}

// Validate ensures the Journey instance was properly constructed through a
// factory method.
func (j *Journey) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJourneyIsNotConstructed
	}
	return nil
}

// IsEqual compares two journeys by their unique identifiers.
func (j *Journey) IsEqual(other *Journey) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the journey's unique identifier.
func (j *Journey) ID() kernel.UUID {
	return j.id
}

// Passenger returns the passenger the journey serves.
func (j *Journey) Passenger() kernel.UUID {
	return j.passengerID
}

// Legs returns the ordered legs of the journey.
func (j *Journey) Legs() []Leg {
	return j.legs
}

// Name returns the journey's display label, if any.
func (j *Journey) Name() string {
	return j.name
}

// SetName attaches a display label to the journey.
func (j *Journey) SetName(name string) {
	j.name = name
}

// BookingDate returns when the journey was booked or generated.
func (j *Journey) BookingDate() time.Time {
	return j.bookingDate
}

// SourceStandingOrder returns the recurring template the journey was
// generated from, or nil for ad-hoc journeys.
func (j *Journey) SourceStandingOrder() *kernel.UUID {
	return j.sourceStandingOrderID
}

// SetSourceStandingOrder links the journey back to the standing order that
// generated it.
func (j *Journey) SetSourceStandingOrder(standingOrderID kernel.UUID) error {
	if err := standingOrderID.Validate(); err != nil {
		return err
	}
	j.sourceStandingOrderID = &standingOrderID
	return nil
}

// setID validates and sets the journey's unique identifier.
// This is a private method used only during construction.
func (j *Journey) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setPassengerID validates and sets the passenger reference.
func (j *Journey) setPassengerID(passengerID kernel.UUID) error {
	if err := passengerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("passengerID", err)
	}
	j.passengerID = passengerID
	return nil
}

// setLegs validates and sets the ordered legs.
func (j *Journey) setLegs(legs []Leg) error {
	if len(legs) == 0 {
		return errs.NewValueIsRequiredError("legs")
	}
	for _, leg := range legs {
		if err := leg.Trip().Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("legs", err)
		}
	}
	if legs[len(legs)-1].TransitionToNext() != nil {
		return ErrDanglingTransition
	}
	j.legs = legs
	return nil
}

// setBookingDate validates and sets the booking date.
func (j *Journey) setBookingDate(bookingDate time.Time) error {
	if bookingDate.IsZero() {
		return errs.NewValueIsRequiredError("bookingDate")
	}
	j.bookingDate = bookingDate
	return nil
}
