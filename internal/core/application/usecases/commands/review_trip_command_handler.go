package commands

import (
	"context"

	"nemt/internal/core/ports"
)

// ReviewTripCommandHandler applies a reviewer's decision to a pending trip
// and publishes the resulting lifecycle events.
type ReviewTripCommandHandler struct {
	uowFactory     TripUoWFactory
	eventPublisher ports.DomainEventPublisher
}

// NewReviewTripCommandHandler creates a handler for trip review operations.
func NewReviewTripCommandHandler(
	uowFactory TripUoWFactory,
	eventPublisher ports.DomainEventPublisher,
) ReviewTripCommandHandler {
	return ReviewTripCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// Handle processes the review command.
// Loads the trip, applies Approve or Reject, persists the change, and
// publishes the recorded events after commit.
func (h *ReviewTripCommandHandler) Handle(ctx context.Context, cmd ReviewTripCommand) error {
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
	reviewed, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	switch cmd.Decision() {
	case DecisionApprove:
		err = reviewed.Approve(cmd.ActorID())
	case DecisionReject:
		err = reviewed.Reject(cmd.ActorID(), cmd.Reason())
	}
	if err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, reviewed); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.eventPublisher.Publish(ctx, reviewed.DomainEvents())
}
