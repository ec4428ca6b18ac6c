package commands_test

import (
	"context"
	"errors"
	"testing"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStandingOrderRepository struct{ mock.Mock }

func (m *MockStandingOrderRepository) Add(ctx context.Context, aggregate *standingorder.StandingOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockStandingOrderRepository) Update(ctx context.Context, aggregate *standingorder.StandingOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockStandingOrderRepository) Get(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*standingorder.StandingOrder), args.Error(1)
}

func (m *MockStandingOrderRepository) GetAllInActiveStatus(ctx context.Context) ([]*standingorder.StandingOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*standingorder.StandingOrder), args.Error(1)
}

type MockStandingOrderUoW struct{ mock.Mock }

func (m *MockStandingOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStandingOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStandingOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStandingOrderUoW) StandingOrderRepository() ports.StandingOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.StandingOrderRepository)
}

type MockStandingOrderUoWFactory struct{ mock.Mock }

func (m *MockStandingOrderUoWFactory) Create() commands.StandingOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.StandingOrderUoW)
}

func newCreateStandingOrderCommand(t *testing.T) commands.CreateStandingOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateStandingOrderCommand(
		kernel.NewUUID(), "Dialysis MWF", kernel.NewUUID(),
		"FREQ=WEEKLY;BYDAY=MO,WE,FR", testEffectiveRange(t), nil, testJourneyTemplate(t),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateStandingOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateStandingOrderCommand(t)

	repo := new(MockStandingOrderRepository)
	uow := new(MockStandingOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StandingOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*standingorder.StandingOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStandingOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateStandingOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)

	addCall := repo.Calls[0]
	added := addCall.Arguments[1].(*standingorder.StandingOrder)
	assert.Equal(t, cmd.OrderID(), added.ID())
	assert.Equal(t, standingorder.Active, added.Status())
	assert.Nil(t, added.LastGeneratedUpTo())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateStandingOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateStandingOrderCommand{} // not constructed properly

	factory := new(MockStandingOrderUoWFactory)
	h := commands.NewCreateStandingOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateStandingOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateStandingOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateStandingOrderCommand(t)

	repo := new(MockStandingOrderRepository)
	uow := new(MockStandingOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StandingOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*standingorder.StandingOrder")).
			Return(errors.New("add error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStandingOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateStandingOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "add error")
}
