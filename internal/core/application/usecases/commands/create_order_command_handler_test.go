package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/client"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByClient(ctx context.Context, clientID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInNewStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateGuarded(ctx context.Context, o *order.Order, expected ...order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*client.Client, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) Record(ctx context.Context, entry *audit.Entry) {
	m.Called(ctx, entry)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.NewClient(kernel.NewUUID(), 100500, "rider", "Ivan", "Petrov")
	require.NoError(t, err)
	return c
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testClient := newTestClient(t)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testClient.ID(), "Lenina 1", "Gagarina 15", "two bags")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	clientRepo := new(MockClientRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("Get", ctx, testClient.ID()).Return(testClient, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByClient", ctx, testClient.ID()).Return(nil, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	recorder.On("Record", ctx, mock.AnythingOfType("*audit.Entry")).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	clientRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)

	// The persisted order starts its life in New status
	addedOrder := orderRepo.Calls[1].Arguments[1].(*order.Order)
	assert.Equal(t, order.New, addedOrder.Status())
	assert.Equal(t, cmd.OrderID(), addedOrder.ID())

	// The audit entry describes the creation
	recordedEntry := recorder.Calls[0].Arguments[1].(*audit.Entry)
	assert.Equal(t, audit.OrderCreated, recordedEntry.Action())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	recorder := new(MockRecorder)
	handler := commands.NewCreateOrderCommandHandler(factory, recorder)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Lenina 1", "Gagarina 15", "")
	require.NoError(t, err)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, new(MockRecorder))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_ClientNotFound(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), clientID, "Lenina 1", "Gagarina 15", "")
	require.NoError(t, err)

	clientRepo := new(MockClientRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("Get", ctx, clientID).
			Return(nil, errs.NewObjectNotFoundError("clientID", clientID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	handler := commands.NewCreateOrderCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	recorder.AssertNotCalled(t, "Record")
}

func TestCreateOrderCommandHandler_Handle_ActiveOrderConflict(t *testing.T) {
	ctx := t.Context()

	testClient := newTestClient(t)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testClient.ID(), "Lenina 1", "Gagarina 15", "")
	require.NoError(t, err)

	activeOrder, err := order.NewOrder(
		kernel.NewUUID(), testClient.ID(), "Mira 3", "Airport", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	clientRepo := new(MockClientRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("Get", ctx, testClient.ID()).Return(testClient, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByClient", ctx, testClient.ID()).Return(activeOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	handler := commands.NewCreateOrderCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	orderRepo.AssertNotCalled(t, "Add")
	recorder.AssertNotCalled(t, "Record")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	testClient := newTestClient(t)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testClient.ID(), "Lenina 1", "Gagarina 15", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	clientRepo := new(MockClientRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("Get", ctx, testClient.ID()).Return(testClient, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByClient", ctx, testClient.ID()).Return(nil, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, new(MockRecorder))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	testClient := newTestClient(t)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testClient.ID(), "Lenina 1", "Gagarina 15", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	clientRepo := new(MockClientRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("Get", ctx, testClient.ID()).Return(testClient, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetActiveByClient", ctx, testClient.ID()).Return(nil, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockRecorder)
	handler := commands.NewCreateOrderCommandHandler(factory, recorder)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	recorder.AssertNotCalled(t, "Record")
}
