package jobs

import (
	"context"
	"log/slog"

	"nemt/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OptimizerFeedJob manages the scheduled submission of unscheduled trips to
// the external optimizer. Runs every minute so newly approved trips reach the
// solver promptly.
type OptimizerFeedJob struct {
	uowFactory ports.UnitOfWorkFactory
	optimizer  ports.Optimizer
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOptimizerFeedJob creates a new job for feeding the optimizer.
// Reads approved trips through the unit of work and submits them via the
// Optimizer port.
func NewOptimizerFeedJob(
	uowFactory ports.UnitOfWorkFactory,
	optimizer ports.Optimizer,
	logger *slog.Logger,
) *OptimizerFeedJob {
	return &OptimizerFeedJob{
		uowFactory: uowFactory,
		optimizer:  optimizer,
		cron:       cron.New(),
		logger:     logger.With("component", "optimizer_feed_job"),
	}
}

// Start begins the optimizer feed job to run every minute.
func (j *OptimizerFeedJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Optimizer feed job started (running every minute)")
	return nil
}

// Stop stops the optimizer feed job.
func (j *OptimizerFeedJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Optimizer feed job stopped")
}

// run submits every trip awaiting assignment to the optimizer.
func (j *OptimizerFeedJob) run() {
	ctx := context.Background()
	uow := j.uowFactory.Create()

	trips, err := uow.TripRepository().GetAllInApprovedStatus(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Optimizer feed job failed to read approved trips", "error", err)
		return
	}

	if len(trips) == 0 {
		return
	}

	requests := make([]ports.AssignmentRequest, 0, len(trips))
	for _, approvedTrip := range trips {
		requests = append(requests, ports.AssignmentRequest{
			TripID:               approvedTrip.ID(),
			CapacityRequirements: approvedTrip.CapacityRequirements(),
			Constraints:          approvedTrip.Constraints(),
		})
	}

	if err := j.optimizer.RequestAssignments(ctx, requests); err != nil {
		j.logger.ErrorContext(ctx, "Optimizer feed job failed to submit trips", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Optimizer feed job submitted trips", "count", len(requests))
}
