package commands_test

import (
	"context"
	"testing"
	"time"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scheduledTripAggregate(t *testing.T) *trip.Trip {
	t.Helper()
	aggregate := testTripAggregate(t)
	actorID := kernel.NewUUID()
	require.NoError(t, aggregate.Approve(actorID))
	require.NoError(t, aggregate.Schedule(actorID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()))
	aggregate.ClearDomainEvents()
	return aggregate
}

func expectTripMutation(ctx context.Context, repo *MockTripRepository, uow *MockTripUoW, publisher *MockEventPublisher, aggregate *trip.Trip) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("[]kernel.DomainEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func TestTransitionStopCommandHandler_Handle_Dispatch(t *testing.T) {
	ctx := t.Context()
	scheduled := scheduledTripAggregate(t)
	firstStop := scheduled.Stops()[0]

	cmd, err := commands.NewTransitionStopCommand(
		scheduled.ID(), firstStop.ID(), kernel.NewUUID(),
		commands.StopEventDispatch, time.Time{}, trip.OutcomeUnknown,
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	expectTripMutation(ctx, repo, uow, publisher, scheduled)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionStopCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.InProgress, scheduled.Status())
	assert.Equal(t, trip.StopAssigned, firstStop.Status())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionStopCommandHandler_Handle_ArriveRecordsTime(t *testing.T) {
	ctx := t.Context()
	scheduled := scheduledTripAggregate(t)
	firstStop := scheduled.Stops()[0]
	actorID := kernel.NewUUID()
	require.NoError(t, scheduled.DispatchStop(actorID, firstStop.ID()))
	require.NoError(t, scheduled.DepartForStop(actorID, firstStop.ID()))

	at := time.Date(2026, time.March, 11, 8, 7, 0, 0, time.UTC)
	cmd, err := commands.NewTransitionStopCommand(
		scheduled.ID(), firstStop.ID(), actorID,
		commands.StopEventArrive, at, trip.OutcomeUnknown,
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	expectTripMutation(ctx, repo, uow, publisher, scheduled)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionStopCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.StopArrived, firstStop.Status())
	require.NotNil(t, firstStop.ActualArrivalTime())
	assert.Equal(t, at, *firstStop.ActualArrivalTime())
}

func TestTransitionStopCommandHandler_Handle_LastStopCompletionClosesTrip(t *testing.T) {
	ctx := t.Context()
	scheduled := scheduledTripAggregate(t)
	actorID := kernel.NewUUID()
	at := time.Date(2026, time.March, 11, 8, 30, 0, 0, time.UTC)
	firstStop := scheduled.Stops()[0]
	lastStop := scheduled.Stops()[1]
	require.NoError(t, scheduled.DispatchStop(actorID, firstStop.ID()))
	require.NoError(t, scheduled.DepartForStop(actorID, firstStop.ID()))
	require.NoError(t, scheduled.ArriveAtStop(actorID, firstStop.ID(), at))
	require.NoError(t, scheduled.CompleteStop(actorID, firstStop.ID(), trip.OutcomeCompletedAsPlanned, at))
	require.NoError(t, scheduled.DispatchStop(actorID, lastStop.ID()))
	require.NoError(t, scheduled.DepartForStop(actorID, lastStop.ID()))
	require.NoError(t, scheduled.ArriveAtStop(actorID, lastStop.ID(), at))
	scheduled.ClearDomainEvents()

	cmd, err := commands.NewTransitionStopCommand(
		scheduled.ID(), lastStop.ID(), actorID,
		commands.StopEventComplete, at.Add(5*time.Minute), trip.OutcomeCompletedAsPlanned,
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	expectTripMutation(ctx, repo, uow, publisher, scheduled)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionStopCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.StopCompleted, lastStop.Status())
	assert.Equal(t, trip.Completed, scheduled.Status())
	repo.AssertExpectations(t)
}

func TestTransitionStopCommandHandler_Handle_CompleteBeforeArrival(t *testing.T) {
	ctx := t.Context()
	scheduled := scheduledTripAggregate(t)
	firstStop := scheduled.Stops()[0]

	at := time.Date(2026, time.March, 11, 8, 12, 0, 0, time.UTC)
	cmd, err := commands.NewTransitionStopCommand(
		scheduled.ID(), firstStop.ID(), kernel.NewUUID(),
		commands.StopEventComplete, at, trip.OutcomeCompletedAsPlanned,
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, scheduled.ID()).Return(scheduled, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionStopCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestTransitionStopCommandHandler_Handle_UnknownStop(t *testing.T) {
	ctx := t.Context()
	scheduled := scheduledTripAggregate(t)

	cmd, err := commands.NewTransitionStopCommand(
		scheduled.ID(), kernel.NewUUID(), kernel.NewUUID(),
		commands.StopEventDispatch, time.Time{}, trip.OutcomeUnknown,
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, scheduled.ID()).Return(scheduled, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionStopCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionStopCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionStopCommand{} // not constructed properly

	factory := new(MockTripUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewTransitionStopCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionStopCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
