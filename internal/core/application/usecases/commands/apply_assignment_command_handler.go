package commands

import (
	"context"

	"nemt/internal/core/domain/services"
	"nemt/internal/core/ports"
)

// ApplyAssignmentCommandHandler schedules an approved trip onto the driver
// and vehicle the optimizer proposed.
//
// The pair is re-validated against the trip's constraints and the vehicle's
// capacity profile before the trip transitions; a proposal the domain
// rejects never reaches storage.
type ApplyAssignmentCommandHandler struct {
	uowFactory     TripUoWFactory
	validator      services.AssignmentValidator
	eventPublisher ports.DomainEventPublisher
}

// NewApplyAssignmentCommandHandler creates a handler for assignment
// application.
func NewApplyAssignmentCommandHandler(
	uowFactory TripUoWFactory,
	validator services.AssignmentValidator,
	eventPublisher ports.DomainEventPublisher,
) ApplyAssignmentCommandHandler {
	return ApplyAssignmentCommandHandler{
		uowFactory:     uowFactory,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// Handle processes the assignment command.
// Loads the trip, validates the candidate pair, schedules the trip, persists
// it, and publishes the recorded events after commit.
func (h *ApplyAssignmentCommandHandler) Handle(ctx context.Context, cmd ApplyAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tripRepo := uow.TripRepository()
	assigned, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	if err = h.validator.ValidateAssignment(assigned, cmd.Driver(), cmd.Vehicle()); err != nil {
		return err
	}

	if err = assigned.Schedule(cmd.ActorID(), cmd.Driver().ID, cmd.Vehicle().ID, cmd.RouteManifestID()); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, assigned); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.eventPublisher.Publish(ctx, assigned.DomainEvents())
}
