package commands_test

import (
	"errors"
	"testing"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewTripCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	pending := testTripAggregate(t)
	cmd, err := commands.NewReviewTripCommand(
		pending.ID(), kernel.NewUUID(), commands.DecisionApprove, "",
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("[]kernel.DomainEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewTripCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.Approved, pending.Status())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReviewTripCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	pending := testTripAggregate(t)
	cmd, err := commands.NewReviewTripCommand(
		pending.ID(), kernel.NewUUID(), commands.DecisionReject, "passenger not eligible",
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("[]kernel.DomainEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewTripCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.Rejected, pending.Status())
	assert.Equal(t, "passenger not eligible", pending.RejectionReason())
}

func TestReviewTripCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReviewTripCommand{} // not constructed properly

	factory := new(MockTripUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewReviewTripCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReviewTripCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestReviewTripCommandHandler_Handle_TripNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewTripCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.DecisionApprove, "",
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, cmd.TripID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewTripCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "Publish")
}

func TestReviewTripCommandHandler_Handle_AlreadyApproved(t *testing.T) {
	ctx := t.Context()
	approved := testTripAggregate(t)
	require.NoError(t, approved.Approve(kernel.NewUUID()))

	cmd, err := commands.NewReviewTripCommand(
		approved.ID(), kernel.NewUUID(), commands.DecisionApprove, "",
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, approved.ID()).Return(approved, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewTripCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, trip.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestReviewTripCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	pending := testTripAggregate(t)
	cmd, err := commands.NewReviewTripCommand(
		pending.ID(), kernel.NewUUID(), commands.DecisionApprove, "",
	)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewTripCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "update error")
	publisher.AssertNotCalled(t, "Publish")
}
