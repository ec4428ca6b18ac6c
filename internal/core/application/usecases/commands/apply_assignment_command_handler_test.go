package commands_test

import (
	"testing"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approvedTripAggregate(t *testing.T) *trip.Trip {
	t.Helper()
	aggregate := testTripAggregate(t)
	require.NoError(t, aggregate.Approve(kernel.NewUUID()))
	aggregate.ClearDomainEvents()
	return aggregate
}

func newApplyAssignmentCommand(t *testing.T, tripID kernel.UUID) commands.ApplyAssignmentCommand {
	t.Helper()
	cmd, err := commands.NewApplyAssignmentCommand(
		tripID, kernel.NewUUID(), kernel.NewUUID(), testDriver(t), testVehicle(t),
	)
	require.NoError(t, err)
	return cmd
}

func TestApplyAssignmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	approved := approvedTripAggregate(t)
	cmd := newApplyAssignmentCommand(t, approved.ID())

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, approved.ID()).Return(approved, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("[]kernel.DomainEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAssignmentCommandHandler(factory, services.NewAssignmentValidator(), publisher)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.Scheduled, approved.Status())
	require.NotNil(t, approved.Driver())
	assert.Equal(t, cmd.Driver().ID, *approved.Driver())
	require.NotNil(t, approved.Vehicle())
	assert.Equal(t, cmd.Vehicle().ID, *approved.Vehicle())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestApplyAssignmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ApplyAssignmentCommand{} // not constructed properly

	factory := new(MockTripUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewApplyAssignmentCommandHandler(factory, services.NewAssignmentValidator(), publisher)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrApplyAssignmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestApplyAssignmentCommandHandler_Handle_VehicleTooSmall(t *testing.T) {
	ctx := t.Context()
	approved := approvedTripAggregate(t)

	profile, err := capacity.NewRequirements(map[capacity.SpaceType]int{capacity.Ambulatory: 4})
	require.NoError(t, err)
	sedan := constraint.Vehicle{
		ID:              kernel.NewUUID(),
		Type:            constraint.Sedan,
		CapacityProfile: profile,
	}
	cmd, err := commands.NewApplyAssignmentCommand(
		approved.ID(), kernel.NewUUID(), kernel.NewUUID(), testDriver(t), sedan,
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

	h := commands.NewApplyAssignmentCommandHandler(factory, services.NewAssignmentValidator(), publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrVehicleCapacityExceeded)
	assert.Equal(t, trip.Approved, approved.Status())
	repo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestApplyAssignmentCommandHandler_Handle_ProhibitedVehicle(t *testing.T) {
	ctx := t.Context()
	approved := approvedTripAggregate(t)
	prohibitions := &constraint.ConstraintSet{
		Vehicle: &constraint.VehicleConstraints{Type: constraint.WheelchairVan},
	}
	require.NoError(t, approved.SetConstraints(constraint.TripConstraints{Prohibitions: prohibitions}))

	cmd := newApplyAssignmentCommand(t, approved.ID())

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

	h := commands.NewApplyAssignmentCommandHandler(factory, services.NewAssignmentValidator(), publisher)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrConstraintsViolated)
	assert.Equal(t, trip.Approved, approved.Status())
}

func TestApplyAssignmentCommandHandler_Handle_TripNotApproved(t *testing.T) {
	ctx := t.Context()
	pending := testTripAggregate(t)
	cmd := newApplyAssignmentCommand(t, pending.ID())

	repo := new(MockTripRepository)
	uow := new(MockTripUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAssignmentCommandHandler(factory, services.NewAssignmentValidator(), publisher)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, trip.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update")
}
