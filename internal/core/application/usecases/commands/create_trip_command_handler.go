package commands

import (
	"context"

	"nemt/internal/core/domain/model/trip"
)

// CreateTripCommandHandler handles the business logic for trip creation.
// New trips start in PendingApproval status and wait for review.
//
// Example:
//
//	handler := NewCreateTripCommandHandler(uowFactory)
//	cmd, _ := NewCreateTripCommand(tripID, passengerID, fundingSourceID,
//	    trip.PickupScheduled, requirements, stops, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("trip creation failed: %w", err)
//	}
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewCreateTripCommandHandler creates a handler for trip creation operations.
// Requires a TripUoWFactory for transactional persistence.
func NewCreateTripCommandHandler(uowFactory TripUoWFactory) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the trip creation command.
// Creates the trip in PendingApproval status inside a transaction.
func (h *CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) error {
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

	newTrip, err := trip.NewTrip(
		cmd.TripID(),
		cmd.PassengerID(),
		cmd.FundingSourceID(),
		cmd.PickupType(),
		cmd.CapacityRequirements(),
		cmd.Stops(),
	)
	if err != nil {
		return err
	}

	if constraints := cmd.Constraints(); constraints != nil {
		if err = newTrip.SetConstraints(*constraints); err != nil {
			return err
		}
	}

	if err = uow.TripRepository().Add(ctx, newTrip); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
