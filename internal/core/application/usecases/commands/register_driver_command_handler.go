package commands

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
)

// RegisterDriverCommandHandler handles driver enrollment.
// Registration is keyed by Telegram identity and is an upsert: a first
// contact creates the aggregate, a repeat contact refreshes the mutable
// contact fields. Vehicle details arrive later via the profile command.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewRegisterDriverCommandHandler creates a handler for driver enrollment.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{uowFactory: uowFactory}
}

// Handle processes the driver registration command and returns the stored
// aggregate, freshly created or refreshed.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (*driver.Driver, error) {
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

	driverRepo := uow.DriverRepository()

	existing, err := driverRepo.GetByTelegramID(ctx, cmd.TelegramID())
	if err != nil {
		return nil, err
	}

	if existing == nil {
		created, err := driver.NewDriver(
			cmd.DriverID(), cmd.TelegramID(), cmd.Username(), cmd.FirstName(), cmd.LastName())
		if err != nil {
			return nil, err
		}

		if err = driverRepo.Add(ctx, created); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}

		return created, nil
	}

	existing.UpdateContact(cmd.Username(), cmd.FirstName(), cmd.LastName())

	if err = driverRepo.UpdateProfile(ctx, existing); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}
