package commands

import (
	"context"

	"nemt/internal/core/ports"
)

// CancelTripCommandHandler cancels a trip that has not begun execution and
// publishes the resulting lifecycle events.
type CancelTripCommandHandler struct {
	uowFactory     TripUoWFactory
	eventPublisher ports.DomainEventPublisher
}

// NewCancelTripCommandHandler creates a handler for trip cancellation.
func NewCancelTripCommandHandler(
	uowFactory TripUoWFactory,
	eventPublisher ports.DomainEventPublisher,
) CancelTripCommandHandler {
	return CancelTripCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// Handle processes the cancellation command.
// Loads the trip, cancels it and its remaining stops, persists the change,
// and publishes the recorded events after commit.
func (h *CancelTripCommandHandler) Handle(ctx context.Context, cmd CancelTripCommand) error {
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
	canceled, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	if err = canceled.Cancel(cmd.ActorID(), cmd.Reason()); err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, canceled); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.eventPublisher.Publish(ctx, canceled.DomainEvents())
}
