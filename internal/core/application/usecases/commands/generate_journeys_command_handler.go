package commands

import (
	"context"

	"nemt/internal/core/domain/services"
)

// GenerateJourneysCommandHandler expands a standing order into concrete
// journeys and trips through the horizon date.
//
// Everything a run produced is persisted in one transaction together with the
// order's advanced watermark, so a crash mid-run never leaves journeys
// without a matching watermark or vice versa.
type GenerateJourneysCommandHandler struct {
	uowFactory GenerationUoWFactory
	generator  services.StandingOrderGenerator
}

// NewGenerateJourneysCommandHandler creates a handler for journey generation
// runs.
func NewGenerateJourneysCommandHandler(
	uowFactory GenerationUoWFactory,
	generator services.StandingOrderGenerator,
) GenerateJourneysCommandHandler {
	return GenerateJourneysCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
	}
}

// Handle processes the generation command.
// Loads the standing order, expands its recurrence rule through the horizon,
// and persists the generated journeys, their trips, and the updated order.
func (h *GenerateJourneysCommandHandler) Handle(ctx context.Context, cmd GenerateJourneysCommand) error {
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

	orderRepo := uow.StandingOrderRepository()
	order, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	materialized, err := h.generator.GenerateUpTo(order, cmd.Horizon())
	if err != nil {
		return err
	}

	journeyRepo := uow.JourneyRepository()
	tripRepo := uow.TripRepository()
	for _, generated := range materialized {
		if err = journeyRepo.Add(ctx, generated.Journey); err != nil {
			return err
		}
		for _, generatedTrip := range generated.Trips {
			if err = tripRepo.Add(ctx, generatedTrip); err != nil {
				return err
			}
		}
	}

	if err = orderRepo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
