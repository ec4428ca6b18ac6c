package commands

import (
	"errors"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrTransitionStopCommandIsNotConstructed = errors.New(
		"TransitionStopCommand must be created via NewTransitionStopCommand constructor",
	)
)

// StopEvent names a driver-device lifecycle event on a stop.
type StopEvent string

const (
	// StopEventDispatch assigns the stop to the crew.
	StopEventDispatch StopEvent = "dispatch"

	// StopEventDepart marks the vehicle en route to the stop.
	StopEventDepart StopEvent = "depart"

	// StopEventArrive records arrival at the stop.
	StopEventArrive StopEvent = "arrive"

	// StopEventComplete finishes the stop with an outcome.
	StopEventComplete StopEvent = "complete"

	// StopEventNoShow declares the passenger absent after arrival.
	StopEventNoShow StopEvent = "no_show"

	// StopEventCancel calls the stop off.
	StopEventCancel StopEvent = "cancel"
)

// TransitionStopCommand represents a single driver-device event on one stop
// of a trip: dispatched, departed, arrived, completed, no-show, or canceled.
//
// Arrive, complete, and no-show events carry the time they happened on the
// device, which may lag the time the command is processed. Complete events
// additionally carry the stop's outcome.
type TransitionStopCommand struct { //nolint:recvcheck //using for validation
	tripID     kernel.UUID
	stopID     kernel.UUID
	actorID    kernel.UUID
	event      StopEvent
	occurredAt time.Time
	outcome    trip.StopOutcome

	guard guard.ConstructorGuard
}

// NewTransitionStopCommand creates a command carrying one stop lifecycle
// event. occurredAt is required for arrive, complete, and no-show events;
// outcome is required for complete events.
func NewTransitionStopCommand(
	tripID kernel.UUID,
	stopID kernel.UUID,
	actorID kernel.UUID,
	event StopEvent,
	occurredAt time.Time,
	outcome trip.StopOutcome,
) (TransitionStopCommand, error) {
	stopCommand := TransitionStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		stopCommand.setTripID(tripID),
		stopCommand.setStopID(stopID),
		stopCommand.setActorID(actorID),
		stopCommand.setEvent(event, occurredAt, outcome),
	); err != nil {
		return TransitionStopCommand{}, err
	}

	return stopCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionStopCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStopCommandIsNotConstructed)
}

// TripID returns the trip owning the stop.
func (c TransitionStopCommand) TripID() kernel.UUID {
	return c.tripID
}

// StopID returns the stop being transitioned.
func (c TransitionStopCommand) StopID() kernel.UUID {
	return c.stopID
}

// ActorID returns the driver or dispatcher initiating the event.
func (c TransitionStopCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Event returns the lifecycle event.
func (c TransitionStopCommand) Event() StopEvent {
	return c.event
}

// OccurredAt returns when the event happened on the device.
// Zero for events that carry no timestamp.
func (c TransitionStopCommand) OccurredAt() time.Time {
	return c.occurredAt
}

// Outcome returns the stop outcome. Only set on complete events.
func (c TransitionStopCommand) Outcome() trip.StopOutcome {
	return c.outcome
}

func (c *TransitionStopCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *TransitionStopCommand) setStopID(stopID kernel.UUID) error {
	if err := stopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stopID", err)
	}

	c.stopID = stopID
	return nil
}

func (c *TransitionStopCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *TransitionStopCommand) setEvent(event StopEvent, occurredAt time.Time, outcome trip.StopOutcome) error {
	switch event {
	case StopEventDispatch, StopEventDepart, StopEventCancel:
	case StopEventArrive, StopEventNoShow:
		if occurredAt.IsZero() {
			return errs.NewValueIsRequiredError("occurredAt")
		}
	case StopEventComplete:
		if occurredAt.IsZero() {
			return errs.NewValueIsRequiredError("occurredAt")
		}
		if err := outcome.Validate(); err != nil {
			return err
		}
	default:
		return errs.NewValueIsInvalidError("event")
	}

	c.event = event
	c.occurredAt = occurredAt
	c.outcome = outcome
	return nil
}
