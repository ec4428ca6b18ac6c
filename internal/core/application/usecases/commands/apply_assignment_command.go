package commands

import (
	"errors"

	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrApplyAssignmentCommandIsNotConstructed = errors.New(
		"ApplyAssignmentCommand must be created via NewApplyAssignmentCommand constructor",
	)
)

// ApplyAssignmentCommand represents an optimizer assignment to be applied to
// an approved trip: which driver, vehicle, and route manifest the trip is
// scheduled onto, together with the candidate snapshots needed to re-validate
// the pair against the trip's constraints.
type ApplyAssignmentCommand struct { //nolint:recvcheck //using for validation
	tripID          kernel.UUID
	actorID         kernel.UUID
	routeManifestID kernel.UUID
	driver          constraint.Driver
	vehicle         constraint.Vehicle

	guard guard.ConstructorGuard
}

// NewApplyAssignmentCommand creates a command carrying an optimizer
// assignment with the candidate driver and vehicle snapshots.
func NewApplyAssignmentCommand(
	tripID kernel.UUID,
	actorID kernel.UUID,
	routeManifestID kernel.UUID,
	driver constraint.Driver,
	vehicle constraint.Vehicle,
) (ApplyAssignmentCommand, error) {
	assignmentCommand := ApplyAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignmentCommand.setTripID(tripID),
		assignmentCommand.setActorID(actorID),
		assignmentCommand.setRouteManifestID(routeManifestID),
		assignmentCommand.setDriver(driver),
		assignmentCommand.setVehicle(vehicle),
	); err != nil {
		return ApplyAssignmentCommand{}, err
	}

	return assignmentCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrApplyAssignmentCommandIsNotConstructed)
}

// TripID returns the trip being scheduled.
func (c ApplyAssignmentCommand) TripID() kernel.UUID {
	return c.tripID
}

// ActorID returns the user or system account applying the assignment.
func (c ApplyAssignmentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// RouteManifestID returns the optimizer's route the trip was placed on.
func (c ApplyAssignmentCommand) RouteManifestID() kernel.UUID {
	return c.routeManifestID
}

// Driver returns the candidate driver snapshot.
func (c ApplyAssignmentCommand) Driver() constraint.Driver {
	return c.driver
}

// Vehicle returns the candidate vehicle snapshot.
func (c ApplyAssignmentCommand) Vehicle() constraint.Vehicle {
	return c.vehicle
}

func (c *ApplyAssignmentCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ApplyAssignmentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *ApplyAssignmentCommand) setRouteManifestID(routeManifestID kernel.UUID) error {
	if err := routeManifestID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeManifestID", err)
	}

	c.routeManifestID = routeManifestID
	return nil
}

func (c *ApplyAssignmentCommand) setDriver(driver constraint.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}

	c.driver = driver
	return nil
}

func (c *ApplyAssignmentCommand) setVehicle(vehicle constraint.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}
