package jobs

import (
	"fmt"
	"log/slog"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/application/usecases/queries"
	"nemt/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	standingOrderGenerationJob *StandingOrderGenerationJob
	optimizerFeedJob           *OptimizerFeedJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers and ports as dependencies to wire up the job execution.
func NewJobManager(
	activeOrdersHandler queries.GetActiveStandingOrdersQueryHandler,
	generateHandler commands.GenerateJourneysCommandHandler,
	uowFactory ports.UnitOfWorkFactory,
	optimizer ports.Optimizer,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		standingOrderGenerationJob: NewStandingOrderGenerationJob(activeOrdersHandler, generateHandler, logger),
		optimizerFeedJob:           NewOptimizerFeedJob(uowFactory, optimizer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.standingOrderGenerationJob.Start(); err != nil {
		return fmt.Errorf("failed to start standing order generation job: %w", err)
	}

	if err := jm.optimizerFeedJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.standingOrderGenerationJob.Stop()
		return fmt.Errorf("failed to start optimizer feed job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.standingOrderGenerationJob.Stop()
	jm.optimizerFeedJob.Stop()
}
