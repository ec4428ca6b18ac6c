package commands

import (
	"errors"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrCreateTripCommandIsNotConstructed = errors.New(
		"CreateTripCommand must be created via NewCreateTripCommand constructor",
	)
)

// CreateTripCommand represents a request to register a new transportation
// trip awaiting approval. Carries the booking's identities, its pickup type,
// the occupancy it demands, the constructed stop itinerary, and an optional
// constraint override for driver and vehicle matching.
//
// Example:
//
//	cmd, err := NewCreateTripCommand(tripID, passengerID, fundingSourceID,
//	    trip.PickupScheduled, requirements, stops, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid trip data: %w", err)
//	}
//
//	handler := NewCreateTripCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create trip: %w", err)
//	}
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID               kernel.UUID
	passengerID          kernel.UUID
	fundingSourceID      kernel.UUID
	pickupType           trip.PickupType
	capacityRequirements capacity.Vector
	stops                []*trip.Stop
	constraints          *constraint.TripConstraints

	guard guard.ConstructorGuard
}

// NewCreateTripCommand creates a command to register a new trip.
// Validates identities, the pickup type, the capacity requirements, that at
// least one constructed stop is present, and the internal consistency of the
// constraints when given. Constraints may be nil.
func NewCreateTripCommand(
	tripID kernel.UUID,
	passengerID kernel.UUID,
	fundingSourceID kernel.UUID,
	pickupType trip.PickupType,
	capacityRequirements capacity.Vector,
	stops []*trip.Stop,
	constraints *constraint.TripConstraints,
) (CreateTripCommand, error) {
	tripCommand := CreateTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tripCommand.setTripID(tripID),
		tripCommand.setPassengerID(passengerID),
		tripCommand.setFundingSourceID(fundingSourceID),
		tripCommand.setPickupType(pickupType),
		tripCommand.setCapacityRequirements(capacityRequirements),
		tripCommand.setStops(stops),
		tripCommand.setConstraints(constraints),
	); err != nil {
		return CreateTripCommand{}, err
	}

	return tripCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateTripCommandIsNotConstructed if validation fails.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

// TripID returns the unique identifier for the trip.
func (c CreateTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// PassengerID returns the primary passenger's identifier.
func (c CreateTripCommand) PassengerID() kernel.UUID {
	return c.passengerID
}

// FundingSourceID returns the payer's identifier.
func (c CreateTripCommand) FundingSourceID() kernel.UUID {
	return c.fundingSourceID
}

// PickupType returns the trip's pickup type.
func (c CreateTripCommand) PickupType() trip.PickupType {
	return c.pickupType
}

// CapacityRequirements returns the occupancy the trip demands.
func (c CreateTripCommand) CapacityRequirements() capacity.Vector {
	return c.capacityRequirements
}

// Stops returns the constructed stop itinerary.
func (c CreateTripCommand) Stops() []*trip.Stop {
	return c.stops
}

// Constraints returns the constraint override for driver and vehicle
// matching. Nil when the trip has none.
func (c CreateTripCommand) Constraints() *constraint.TripConstraints {
	return c.constraints
}

func (c *CreateTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *CreateTripCommand) setPassengerID(passengerID kernel.UUID) error {
	if err := passengerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("passengerID", err)
	}

	c.passengerID = passengerID
	return nil
}

func (c *CreateTripCommand) setFundingSourceID(fundingSourceID kernel.UUID) error {
	if err := fundingSourceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("fundingSourceID", err)
	}

	c.fundingSourceID = fundingSourceID
	return nil
}

func (c *CreateTripCommand) setPickupType(pickupType trip.PickupType) error {
	if err := pickupType.Validate(); err != nil {
		return err
	}

	c.pickupType = pickupType
	return nil
}

func (c *CreateTripCommand) setCapacityRequirements(requirements capacity.Vector) error {
	if requirements.IsZero() {
		return errs.NewValueIsRequiredError("capacityRequirements")
	}

	c.capacityRequirements = requirements
	return nil
}

func (c *CreateTripCommand) setConstraints(constraints *constraint.TripConstraints) error {
	if constraints == nil {
		return nil
	}
	if err := constraints.Validate(); err != nil {
		return err
	}

	c.constraints = constraints
	return nil
}

func (c *CreateTripCommand) setStops(stops []*trip.Stop) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}
	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return err
		}
	}

	c.stops = stops
	return nil
}
