package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
)

// AssignDriverCommandHandler claims an order for a driver.
// This is the contended operation of the system: many drivers race for the
// same broadcast order, and one order at most may be won.
//
// Exclusivity rests on two guarded writes inside one transaction. The order
// row is updated only while still in New or Broadcast status, and the driver
// row only while still available. Whichever concurrent claimer commits first
// wins; every later claimer sees zero guarded rows and gets
// InvalidStateError (order taken) or DriverUnavailableError (driver taken).
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	recorder   Recorder
}

// NewAssignDriverCommandHandler creates a handler for order assignment operations.
func NewAssignDriverCommandHandler(uowFactory UoWFactory, recorder Recorder) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the assignment command.
//
// Returns:
//   - ObjectNotFoundError when the order or the driver does not exist
//   - InvalidStateError when the order is not claimable
//   - DriverUnavailableError when the driver is blocked or already busy
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	target, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	claimer, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = target.Assign(claimer.ID()); err != nil {
		return err
	}
	if err = claimer.MarkBusy(); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, target, order.New, order.Broadcast); err != nil {
		return err
	}
	if err = driverRepo.UpdateGuardedAvailable(ctx, claimer); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordAssigned(ctx, target, claimer.ID(), cmd.Actor())
	return nil
}

func (h AssignDriverCommandHandler) recordAssigned(
	ctx context.Context, target *order.Order, driverID kernel.UUID, actor order.Actor,
) {
	orderID := target.ID()
	clientID := target.ClientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.OrderAssigned,
		&orderID, &driverID, &clientID,
		fmt.Sprintf("driver %s claimed the order, assigned by %s", driverID, actor),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
