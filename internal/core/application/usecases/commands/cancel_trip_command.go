package commands

import (
	"errors"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrCancelTripCommandIsNotConstructed = errors.New(
		"CancelTripCommand must be created via NewCancelTripCommand constructor",
	)
)

// CancelTripCommand represents a request to call a trip off before execution
// begins. Cancellation always carries a reason; halting a trip that is
// already in progress is handled by the stop lifecycle instead.
type CancelTripCommand struct { //nolint:recvcheck //using for validation
	tripID  kernel.UUID
	actorID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelTripCommand creates a command to cancel a trip.
// Returns an error when either identifier is invalid or the reason is empty.
func NewCancelTripCommand(
	tripID kernel.UUID,
	actorID kernel.UUID,
	reason string,
) (CancelTripCommand, error) {
	cancelCommand := CancelTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setTripID(tripID),
		cancelCommand.setActorID(actorID),
		cancelCommand.setReason(reason),
	); err != nil {
		return CancelTripCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelTripCommand) Validate() error {
	return c.guard.Validate(ErrCancelTripCommandIsNotConstructed)
}

// TripID returns the trip being canceled.
func (c CancelTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// ActorID returns the user canceling the trip.
func (c CancelTripCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the cancellation reason.
func (c CancelTripCommand) Reason() string {
	return c.reason
}

func (c *CancelTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *CancelTripCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *CancelTripCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
