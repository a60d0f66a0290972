package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
)

// SetDriverAccountStatusCommandHandler blocks or unblocks a driver account.
// Blocking keeps the busy flag untouched, so a driver blocked mid-ride still
// returns to a consistent state when the ride completes.
type SetDriverAccountStatusCommandHandler struct {
	uowFactory DriverUoWFactory
	recorder   Recorder
}

// NewSetDriverAccountStatusCommandHandler creates a handler for account status changes.
func NewSetDriverAccountStatusCommandHandler(
	uowFactory DriverUoWFactory, recorder Recorder,
) SetDriverAccountStatusCommandHandler {
	return SetDriverAccountStatusCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the account status command.
// Returns InvalidStateError when the account is already in the requested status.
func (h SetDriverAccountStatusCommandHandler) Handle(ctx context.Context, cmd SetDriverAccountStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	target, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	switch cmd.Status() {
	case driver.Blocked:
		err = target.Block()
	case driver.Active:
		err = target.Unblock()
	default:
		err = cmd.Status().Validate()
	}
	if err != nil {
		return err
	}

	if err = driverRepo.UpdateAccountStatus(ctx, target); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordStatusChange(ctx, target)
	return nil
}

func (h SetDriverAccountStatusCommandHandler) recordStatusChange(ctx context.Context, target *driver.Driver) {
	action := audit.DriverUnblocked
	if target.AccountStatus() == driver.Blocked {
		action = audit.DriverBlocked
	}

	driverID := target.ID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), action,
		nil, &driverID, nil,
		fmt.Sprintf("account status set to %s", target.AccountStatus()),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
