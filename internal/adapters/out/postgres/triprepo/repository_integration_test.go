package triprepo_test

import (
	"context"
	"testing"
	"time"

	"nemt/internal/adapters/out/postgres/triprepo"
	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/core/ports"
	"nemt/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormTripRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *triprepo.GormTripRepository
}

func (suite *GormTripRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&triprepo.TripDTO{}, &triprepo.StopDTO{})
	suite.Require().NoError(err)

	suite.repo = triprepo.NewGormTripRepository(db, &mockAggregateTracker{})
}

func (suite *GormTripRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormTripRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE trips CASCADE").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("TRUNCATE TABLE stops CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormTripRepositoryTestSuite) TestAddAndGet_RoundTripsAggregate() {
	aggregate := suite.newTrip()
	constraints := constraint.TripConstraints{
		Requirements: &constraint.ConstraintSet{
			Driver: &constraint.DriverConstraints{Gender: constraint.Female},
		},
		Prohibitions: &constraint.ConstraintSet{
			Vehicle: &constraint.VehicleConstraints{Type: constraint.Sedan},
		},
	}
	err := aggregate.SetConstraints(constraints)
	suite.Require().NoError(err)

	err = suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)

	suite.True(aggregate.IsEqual(restored))
	suite.Equal(trip.PendingApproval, restored.Status())
	suite.Equal(trip.PickupScheduled, restored.PickupType())
	suite.Equal(aggregate.Passenger(), restored.Passenger())
	suite.Equal(aggregate.CapacityRequirements(), restored.CapacityRequirements())
	suite.Equal(0, restored.Version())

	suite.Require().NotNil(restored.Constraints())
	suite.Require().NotNil(restored.Constraints().Requirements)
	suite.Equal(constraint.Female, restored.Constraints().Requirements.Driver.Gender)
	suite.Require().NotNil(restored.Constraints().Prohibitions)
	suite.Equal(constraint.Sedan, restored.Constraints().Prohibitions.Vehicle.Type)

	suite.Require().Len(restored.Stops(), 2)
	suite.Equal(trip.Pickup, restored.Stops()[0].Type())
	suite.Equal(trip.Dropoff, restored.Stops()[1].Type())
	suite.Equal(aggregate.Stops()[0].ID(), restored.Stops()[0].ID())
	suite.Equal(aggregate.Stops()[1].ID(), restored.Stops()[1].ID())
}

func (suite *GormTripRepositoryTestSuite) TestGet_NotFound_ReturnsObjectNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormTripRepositoryTestSuite) TestUpdate_PersistsLifecycleTransition() {
	aggregate := suite.newTrip()
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	err = aggregate.Approve(kernel.NewUUID())
	suite.Require().NoError(err)

	err = suite.repo.Update(context.Background(), aggregate)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.Approved, restored.Status())
	suite.Equal(1, restored.Version())
}

func (suite *GormTripRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	aggregate := suite.newTrip()
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	// Two collaborators load the same trip
	first, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)

	err = first.Approve(kernel.NewUUID())
	suite.Require().NoError(err)
	err = suite.repo.Update(context.Background(), first)
	suite.Require().NoError(err)

	err = second.Reject(kernel.NewUUID(), "duplicate request")
	suite.Require().NoError(err)
	err = suite.repo.Update(context.Background(), second)

	suite.Require().Error(err)
	suite.ErrorIs(err, ports.ErrConcurrencyConflict)

	// The first writer's transition survives
	restored, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.Approved, restored.Status())
}

func (suite *GormTripRepositoryTestSuite) TestUpdate_NotFound_ReturnsObjectNotFound() {
	aggregate := suite.newTrip()

	err := suite.repo.Update(context.Background(), aggregate)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormTripRepositoryTestSuite) TestUpdate_PersistsStopProgress() {
	aggregate := suite.newTrip()
	err := suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	actorID := kernel.NewUUID()
	err = aggregate.Approve(actorID)
	suite.Require().NoError(err)
	err = aggregate.Schedule(actorID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	pickupID := aggregate.Stops()[0].ID()
	err = aggregate.DispatchStop(actorID, pickupID)
	suite.Require().NoError(err)
	err = aggregate.DepartForStop(actorID, pickupID)
	suite.Require().NoError(err)
	arrivedAt := time.Date(2026, time.March, 11, 8, 5, 0, 0, time.UTC)
	err = aggregate.ArriveAtStop(actorID, pickupID, arrivedAt)
	suite.Require().NoError(err)

	err = suite.repo.Update(context.Background(), aggregate)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.InProgress, restored.Status())
	suite.Equal(trip.StopArrived, restored.Stops()[0].Status())
	suite.Require().NotNil(restored.Stops()[0].ActualArrivalTime())
	suite.True(arrivedAt.Equal(*restored.Stops()[0].ActualArrivalTime()))
}

func (suite *GormTripRepositoryTestSuite) TestGetAllInApprovedStatus_FiltersByStatus() {
	pending := suite.newTrip()
	err := suite.repo.Add(context.Background(), pending)
	suite.Require().NoError(err)

	approved := suite.newTrip()
	err = approved.Approve(kernel.NewUUID())
	suite.Require().NoError(err)
	err = suite.repo.Add(context.Background(), approved)
	suite.Require().NoError(err)

	rejected := suite.newTrip()
	err = rejected.Reject(kernel.NewUUID(), "no authorization on file")
	suite.Require().NoError(err)
	err = suite.repo.Add(context.Background(), rejected)
	suite.Require().NoError(err)

	trips, err := suite.repo.GetAllInApprovedStatus(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(trips, 1)
	suite.True(approved.IsEqual(trips[0]))
}

func (suite *GormTripRepositoryTestSuite) newTrip() *trip.Trip {
	passengerID := kernel.NewUUID()

	earliest := time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC)
	window, err := kernel.NewTimeWindow(earliest, earliest.Add(30*time.Minute))
	suite.Require().NoError(err)

	pickupDelta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Wheelchair: 1})
	suite.Require().NoError(err)
	pickup, err := trip.NewPassengerStop(
		kernel.NewUUID(), trip.Pickup, &passengerID,
		kernel.NewUUID(), kernel.NewUUID(),
		pickupDelta, 5*time.Minute, []kernel.TimeWindow{window},
	)
	suite.Require().NoError(err)

	dropoffDelta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Wheelchair: -1})
	suite.Require().NoError(err)
	dropoff, err := trip.NewPassengerStop(
		kernel.NewUUID(), trip.Dropoff, &passengerID,
		kernel.NewUUID(), kernel.NewUUID(),
		dropoffDelta, 5*time.Minute, []kernel.TimeWindow{window},
	)
	suite.Require().NoError(err)

	requirements, err := capacity.NewRequirements(map[capacity.SpaceType]int{capacity.Wheelchair: 1})
	suite.Require().NoError(err)

	aggregate, err := trip.NewTrip(
		kernel.NewUUID(), passengerID, kernel.NewUUID(),
		trip.PickupScheduled, requirements, []*trip.Stop{pickup, dropoff},
	)
	suite.Require().NoError(err)

	return aggregate
}

// mockAggregateTracker is a no-op tracker; repository tests do not publish
// domain events.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestGormTripRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormTripRepositoryTestSuite))
}
