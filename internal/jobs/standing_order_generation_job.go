package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/application/usecases/queries"
	"nemt/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// generationHorizon is how far past now each run expands standing orders.
const generationHorizon = 14 * 24 * time.Hour

// StandingOrderGenerationJob manages the scheduled expansion of standing
// orders into concrete journeys and trips. Runs hourly, expanding each active
// order up to the rolling generation horizon.
type StandingOrderGenerationJob struct {
	activeOrdersHandler queries.GetActiveStandingOrdersQueryHandler
	generateHandler     commands.GenerateJourneysCommandHandler
	cron                *cron.Cron
	logger              *slog.Logger
}

// NewStandingOrderGenerationJob creates a new job for standing order expansion.
// Uses GenerateJourneysCommandHandler to materialize journeys per active order.
func NewStandingOrderGenerationJob(
	activeOrdersHandler queries.GetActiveStandingOrdersQueryHandler,
	generateHandler commands.GenerateJourneysCommandHandler,
	logger *slog.Logger,
) *StandingOrderGenerationJob {
	return &StandingOrderGenerationJob{
		activeOrdersHandler: activeOrdersHandler,
		generateHandler:     generateHandler,
		cron:                cron.New(),
		logger:              logger.With("component", "standing_order_generation_job"),
	}
}

// Start begins the standing order generation job to run at the top of every hour.
func (j *StandingOrderGenerationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Standing order generation job started (running hourly)")
	return nil
}

// Stop stops the standing order generation job.
func (j *StandingOrderGenerationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Standing order generation job stopped")
}

// run expands every active standing order up to the generation horizon.
// A failure on one order does not block the rest of the batch.
func (j *StandingOrderGenerationJob) run() {
	ctx := context.Background()
	horizon := time.Now().UTC().Add(generationHorizon)

	activeOrders, err := j.activeOrdersHandler.Handle(ctx, queries.NewGetActiveStandingOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Standing order generation job failed to list active orders", "error", err)
		return
	}

	for _, activeOrder := range activeOrders {
		cmd, cmdErr := commands.NewGenerateJourneysCommand(activeOrder.ID, horizon)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Standing order generation job failed to build command",
				"orderId", activeOrder.ID.String(), "error", cmdErr)
			continue
		}

		if handleErr := j.generateHandler.Handle(ctx, cmd); handleErr != nil {
			// An order paused or ended between listing and expansion is an
			// expected race, not a failure
			if errors.Is(handleErr, services.ErrOrderNotActive) {
				continue
			}
			j.logger.ErrorContext(ctx, "Standing order generation job failed to expand order",
				"orderId", activeOrder.ID.String(), "error", handleErr)
		}
	}
}
