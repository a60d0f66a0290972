package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
)

// UpdateDriverProfileCommandHandler merges phone and vehicle details into a
// driver's profile. The first update that leaves the profile complete marks
// the driver as fully registered in the audit log.
type UpdateDriverProfileCommandHandler struct {
	uowFactory DriverUoWFactory
	recorder   Recorder
}

// NewUpdateDriverProfileCommandHandler creates a handler for profile updates.
func NewUpdateDriverProfileCommandHandler(
	uowFactory DriverUoWFactory, recorder Recorder,
) UpdateDriverProfileCommandHandler {
	return UpdateDriverProfileCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the profile update command and returns the stored aggregate.
func (h UpdateDriverProfileCommandHandler) Handle(
	ctx context.Context, cmd UpdateDriverProfileCommand,
) (*driver.Driver, error) {
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

	target, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	completed := target.UpdateProfile(
		cmd.Phone(), cmd.VehicleBrand(), cmd.VehicleModel(), cmd.VehicleColor(), cmd.VehiclePlate())

	if err = driverRepo.UpdateProfile(ctx, target); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if completed {
		h.recordRegistered(ctx, target)
	}

	return target, nil
}

func (h UpdateDriverProfileCommandHandler) recordRegistered(ctx context.Context, target *driver.Driver) {
	driverID := target.ID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.DriverRegistered,
		nil, &driverID, nil,
		fmt.Sprintf("%s %s %s", target.VehicleBrand(), target.VehicleModel(), target.VehiclePlate()),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
