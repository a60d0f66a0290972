package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) UpdateProfile(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) UpdateAccountStatus(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Release(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*driver.Driver, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) UpdateGuardedAvailable(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockLifecycleUoW struct{ mock.Mock }

func (m *MockLifecycleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockLifecycleUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newBroadcastOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Lenina 1", "Gagarina 15", "")
	require.NoError(t, err)
	require.NoError(t, o.MarkBroadcast())
	return o
}

func newAvailableDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), 42, "wheels", "Petr", "Sidorov")
	require.NoError(t, err)
	return d
}

func TestAssignDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newBroadcastOrder(t)
	testDriver := newAvailableDriver(t)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		orderRepo.On("UpdateGuarded", ctx, mock.AnythingOfType("*order.Order"),
			[]order.Status{order.New, order.Broadcast}).Return(nil).Once(),
		driverRepo.On("UpdateGuardedAvailable", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	recorder.On("Record", ctx, mock.AnythingOfType("*audit.Entry")).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.Equal(t, order.Assigned, testOrder.Status())
	require.NotNil(t, testOrder.Driver())
	assert.Equal(t, testDriver.ID(), *testOrder.Driver())
	assert.NotNil(t, testOrder.AssignedAt())
	assert.False(t, testDriver.IsAvailable())

	recordedEntry := recorder.Calls[0].Arguments[1].(*audit.Entry)
	assert.Equal(t, audit.OrderAssigned, recordedEntry.Action())
}

func TestAssignDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignDriverCommand{} // not constructed properly

	factory := new(MockLifecycleUoWFactory)
	handler := commands.NewAssignDriverCommandHandler(factory, new(MockRecorder))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignDriverCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignDriverCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewAssignDriverCommand(orderID, kernel.NewUUID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, new(MockRecorder))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignDriverCommandHandler_Handle_OrderAlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	testOrder := newBroadcastOrder(t)
	require.NoError(t, testOrder.Assign(kernel.NewUUID()))

	testDriver := newAvailableDriver(t)
	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	handler := commands.NewAssignDriverCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	orderRepo.AssertNotCalled(t, "UpdateGuarded")
	recorder.AssertNotCalled(t, "Record")
}

func TestAssignDriverCommandHandler_Handle_DriverBusy(t *testing.T) {
	ctx := t.Context()

	testOrder := newBroadcastOrder(t)
	testDriver := newAvailableDriver(t)
	require.NoError(t, testDriver.MarkBusy())

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, new(MockRecorder))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrDriverUnavailable)
	orderRepo.AssertNotCalled(t, "UpdateGuarded")
}

func TestAssignDriverCommandHandler_Handle_LostOrderRace(t *testing.T) {
	ctx := t.Context()

	testOrder := newBroadcastOrder(t)
	testDriver := newAvailableDriver(t)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	// Another driver committed the claim first, the guarded write misses.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		orderRepo.On("UpdateGuarded", ctx, mock.AnythingOfType("*order.Order"),
			[]order.Status{order.New, order.Broadcast}).
			Return(errs.NewInvalidStateError("order is no longer claimable")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	handler := commands.NewAssignDriverCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit")
	recorder.AssertNotCalled(t, "Record")
}

func TestAssignDriverCommandHandler_Handle_LostDriverRace(t *testing.T) {
	ctx := t.Context()

	testOrder := newBroadcastOrder(t)
	testDriver := newAvailableDriver(t)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	// The driver claimed another order concurrently, their guarded write misses.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		orderRepo.On("UpdateGuarded", ctx, mock.AnythingOfType("*order.Order"),
			[]order.Status{order.New, order.Broadcast}).Return(nil).Once(),
		driverRepo.On("UpdateGuardedAvailable", ctx, mock.AnythingOfType("*driver.Driver")).
			Return(errs.NewDriverUnavailableError("driver is no longer available")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, new(MockRecorder))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrDriverUnavailable)
	uow.AssertNotCalled(t, "Commit")
}

func TestAssignDriverCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	testOrder := newBroadcastOrder(t)
	testDriver := newAvailableDriver(t)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), order.ActorDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		orderRepo.On("UpdateGuarded", ctx, mock.AnythingOfType("*order.Order"),
			[]order.Status{order.New, order.Broadcast}).Return(nil).Once(),
		driverRepo.On("UpdateGuardedAvailable", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	handler := commands.NewAssignDriverCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	recorder.AssertNotCalled(t, "Record")
}
