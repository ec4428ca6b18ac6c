package commands

import (
	"context"

	"nemt/internal/core/domain/model/standingorder"
)

// CreateStandingOrderCommandHandler registers new standing orders.
type CreateStandingOrderCommandHandler struct {
	uowFactory StandingOrderUoWFactory
}

// NewCreateStandingOrderCommandHandler creates a handler for standing order
// registration.
func NewCreateStandingOrderCommandHandler(uowFactory StandingOrderUoWFactory) CreateStandingOrderCommandHandler {
	return CreateStandingOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the standing order creation command.
// Creates the aggregate in Active status and persists it; generation picks
// the order up on the next run.
func (h *CreateStandingOrderCommandHandler) Handle(ctx context.Context, cmd CreateStandingOrderCommand) error {
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

	order, err := standingorder.NewStandingOrder(
		cmd.OrderID(),
		cmd.Name(),
		cmd.PassengerID(),
		cmd.RecurrenceRule(),
		cmd.EffectiveRange(),
		cmd.ExclusionDates(),
		cmd.JourneyTemplate(),
	)
	if err != nil {
		return err
	}

	if err = uow.StandingOrderRepository().Add(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
