// Package jobs provides scheduled background tasks for the transportation platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch pipeline.
//
// # Available Jobs
//
// 1. StandingOrderGenerationJob - Runs hourly to expand active standing orders
// into concrete journeys and trips up to a rolling 14-day horizon
// 2. OptimizerFeedJob - Runs every minute to submit approved, unscheduled trips
// to the external optimizer
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers and ports
//	jobManager := jobs.NewJobManager(activeOrdersHandler, generateHandler, uowFactory, optimizer, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Generation job skips orders that went inactive between listing and expansion
// - A failure on one standing order does not block the rest of the batch
// - Failed job starts will stop any already running jobs
package jobs
