package commands

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/client"
)

// RegisterClientCommandHandler handles client registration and re-contact.
// First contact creates the client; re-contact refreshes the display fields
// and, when a phone is shared, stores it. Both paths are get-or-create by
// the Telegram identity within a single transaction.
type RegisterClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

// NewRegisterClientCommandHandler creates a handler for client registration.
func NewRegisterClientCommandHandler(uowFactory ClientUoWFactory) RegisterClientCommandHandler {
	return RegisterClientCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the resulting
// client aggregate, freshly created or refreshed.
func (h RegisterClientCommandHandler) Handle(ctx context.Context, cmd RegisterClientCommand) (*client.Client, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clientRepo := uow.ClientRepository()

	existing, err := clientRepo.GetByTelegramID(ctx, cmd.TelegramID())
	if err != nil {
		return nil, err
	}

	if existing == nil {
		created, newErr := client.NewClient(
			cmd.ClientID(), cmd.TelegramID(),
			cmd.Username(), cmd.FirstName(), cmd.LastName(),
		)
		if newErr != nil {
			return nil, newErr
		}
		if cmd.Phone() != "" {
			if phoneErr := created.SetPhone(cmd.Phone()); phoneErr != nil {
				return nil, phoneErr
			}
		}

		if err = clientRepo.Add(ctx, created); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return created, nil
	}

	existing.UpdateContact(cmd.Username(), cmd.FirstName(), cmd.LastName())
	if cmd.Phone() != "" {
		if err = existing.SetPhone(cmd.Phone()); err != nil {
			return nil, err
		}
	}

	if err = clientRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}
