package commands

import (
	"context"

	"nemt/internal/core/domain/model/trip"
	"nemt/internal/core/ports"
)

// TransitionStopCommandHandler applies a driver-device stop event to the
// owning trip. The aggregate keeps the trip's status in sync: the first
// dispatch begins execution, and the event that finishes the last stop
// closes the trip as Completed or Incomplete.
type TransitionStopCommandHandler struct {
	uowFactory     TripUoWFactory
	eventPublisher ports.DomainEventPublisher
}

// NewTransitionStopCommandHandler creates a handler for stop lifecycle
// events.
func NewTransitionStopCommandHandler(
	uowFactory TripUoWFactory,
	eventPublisher ports.DomainEventPublisher,
) TransitionStopCommandHandler {
	return TransitionStopCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// Handle processes the stop transition command.
// Loads the trip, applies the event through the aggregate, persists the
// change, and publishes the recorded events after commit.
func (h *TransitionStopCommandHandler) Handle(ctx context.Context, cmd TransitionStopCommand) error {
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
	owning, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	if err = h.applyEvent(owning, cmd); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, owning); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.eventPublisher.Publish(ctx, owning.DomainEvents())
}

// applyEvent routes the command's event to the matching aggregate operation.
func (h *TransitionStopCommandHandler) applyEvent(owning *trip.Trip, cmd TransitionStopCommand) error {
	switch cmd.Event() {
	case StopEventDispatch:
		return owning.DispatchStop(cmd.ActorID(), cmd.StopID())
	case StopEventDepart:
		return owning.DepartForStop(cmd.ActorID(), cmd.StopID())
	case StopEventArrive:
		return owning.ArriveAtStop(cmd.ActorID(), cmd.StopID(), cmd.OccurredAt())
	case StopEventComplete:
		return owning.CompleteStop(cmd.ActorID(), cmd.StopID(), cmd.Outcome(), cmd.OccurredAt())
	case StopEventNoShow:
		return owning.MarkStopNoShow(cmd.ActorID(), cmd.StopID(), cmd.OccurredAt())
	case StopEventCancel:
		return owning.CancelStop(cmd.ActorID(), cmd.StopID())
	}
	return nil
}
