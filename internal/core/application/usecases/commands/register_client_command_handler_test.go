package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientUoW struct{ mock.Mock }

func (m *MockClientUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClientUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClientUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClientUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

type MockClientUoWFactory struct{ mock.Mock }

func (m *MockClientUoWFactory) Create() commands.ClientUoW {
	args := m.Called()
	return args.Get(0).(commands.ClientUoW)
}

func TestRegisterClientCommandHandler_Handle_NewClient(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	cmd, err := commands.NewRegisterClientCommand(clientID, 100500, "rider", "Ivan", "Petrov", "+79990001122")
	require.NoError(t, err)

	clientRepo := new(MockClientRepository)
	uow := new(MockClientUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("GetByTelegramID", ctx, int64(100500)).Return(nil, nil).Once(),
		clientRepo.On("Add", ctx, mock.AnythingOfType("*client.Client")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClientUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterClientCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, clientID, created.ID())
	assert.Equal(t, "+79990001122", created.Phone())
	clientRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterClientCommandHandler_Handle_ExistingClient(t *testing.T) {
	ctx := t.Context()

	existing := newTestClient(t)
	cmd, err := commands.NewRegisterClientCommand(
		kernel.NewUUID(), existing.TelegramID(), "new_handle", "Ivan", "Petrov", "")
	require.NoError(t, err)

	clientRepo := new(MockClientRepository)
	uow := new(MockClientUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("GetByTelegramID", ctx, existing.TelegramID()).Return(existing, nil).Once(),
		clientRepo.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClientUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterClientCommandHandler(factory)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, existing.ID().IsEqual(updated.ID()))
	assert.Equal(t, "new_handle", updated.Username())
	clientRepo.AssertNotCalled(t, "Add")
}

func TestRegisterClientCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterClientCommand{} // not constructed properly

	factory := new(MockClientUoWFactory)
	handler := commands.NewRegisterClientCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRegisterClientCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterClientCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewRegisterClientCommand(kernel.NewUUID(), 100500, "rider", "Ivan", "Petrov", "")
	require.NoError(t, err)

	clientRepo := new(MockClientRepository)
	uow := new(MockClientUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClientRepository").Return(clientRepo).Once(),
		clientRepo.On("GetByTelegramID", ctx, int64(100500)).Return(nil, nil).Once(),
		clientRepo.On("Add", ctx, mock.AnythingOfType("*client.Client")).
			Return(errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockClientUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterClientCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}
