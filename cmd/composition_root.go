package cmd

import (
	"log/slog"

	"nemt/internal/adapters/out/eventlog"
	"nemt/internal/adapters/out/optimizerclient"
	"nemt/internal/adapters/out/postgres"
	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/application/usecases/queries"
	"nemt/internal/core/domain/services"
	"nemt/internal/core/ports"
	"nemt/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	eventPublisher ports.DomainEventPublisher
	optimizer      ports.Optimizer
	logger         *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		eventPublisher: eventlog.NewSlogEventPublisher(logger),
		optimizer:      optimizerclient.NewHTTPOptimizerClient(config.OptimizerBaseURL),
		logger:         logger,
	}
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTripCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewTripCommandHandler() commands.ReviewTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewTripCommandHandler(f, c.eventPublisher)
}

func (c *CompositionRoot) CreateCancelTripCommandHandler() commands.CancelTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelTripCommandHandler(f, c.eventPublisher)
}

func (c *CompositionRoot) CreateTransitionStopCommandHandler() commands.TransitionStopCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionStopCommandHandler(f, c.eventPublisher)
}

func (c *CompositionRoot) CreateApplyAssignmentCommandHandler() commands.ApplyAssignmentCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyAssignmentCommandHandler(f, services.NewAssignmentValidator(), c.eventPublisher)
}

func (c *CompositionRoot) CreateCreateStandingOrderCommandHandler() commands.CreateStandingOrderCommandHandler {
	var f commands.StandingOrderUoWFactory = FuncStandingOrderUoWFactory(func() commands.StandingOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateStandingOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGenerateJourneysCommandHandler() commands.GenerateJourneysCommandHandler {
	var f commands.GenerationUoWFactory = FuncGenerationUoWFactory(func() commands.GenerationUoW {
		return c.uowFactory.Create()
	})
	generator := services.NewStandingOrderGenerator(services.NewJourneyMaterializer())
	return commands.NewGenerateJourneysCommandHandler(f, generator)
}

func (c *CompositionRoot) CreateGetUnscheduledTripsQueryHandler() queries.GetUnscheduledTripsQueryHandler {
	return queries.NewGetUnscheduledTripsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveStandingOrdersQueryHandler() queries.GetActiveStandingOrdersQueryHandler {
	return queries.NewGetActiveStandingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetActiveStandingOrdersQueryHandler(),
		c.CreateGenerateJourneysCommandHandler(),
		&c.uowFactory,
		c.optimizer,
		c.logger,
	)
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncStandingOrderUoWFactory func() commands.StandingOrderUoW

func (f FuncStandingOrderUoWFactory) Create() commands.StandingOrderUoW {
	return f()
}

type FuncGenerationUoWFactory func() commands.GenerationUoW

func (f FuncGenerationUoWFactory) Create() commands.GenerationUoW {
	return f()
}
