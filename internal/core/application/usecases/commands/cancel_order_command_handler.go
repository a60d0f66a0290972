package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an active order.
// The actor decides how far cancellation reaches: a client may withdraw an
// order only before a driver claims it, an admin may cancel any active
// order. Cancelling an assigned order also releases its driver.
//
// The guarded statuses mirror the actor's rights, so a claim that commits
// concurrently with a client cancellation makes the cancellation fail with
// InvalidStateError instead of silently stranding the driver.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	recorder   Recorder
}

// NewCancelOrderCommandHandler creates a handler for order cancellation operations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, recorder Recorder) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	target, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	wasAssigned := target.Status() == order.Assigned

	if err = target.Cancel(cmd.Actor()); err != nil {
		return err
	}

	expected := []order.Status{order.New, order.Broadcast}
	if cmd.Actor() == order.ActorAdmin {
		expected = append(expected, order.Assigned)
	}
	if err = orderRepo.UpdateGuarded(ctx, target, expected...); err != nil {
		return err
	}

	if wasAssigned {
		if err = h.releaseDriver(ctx, uow, *target.Driver()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordCancelled(ctx, target)
	return nil
}

func (h CancelOrderCommandHandler) releaseDriver(ctx context.Context, uow UoW, driverID kernel.UUID) error {
	driverRepo := uow.DriverRepository()

	assignee, err := driverRepo.Get(ctx, driverID)
	if err != nil {
		return err
	}
	if err = assignee.Release(); err != nil {
		return err
	}

	return driverRepo.Release(ctx, assignee)
}

func (h CancelOrderCommandHandler) recordCancelled(ctx context.Context, target *order.Order) {
	orderID := target.ID()
	clientID := target.ClientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.OrderCancelled,
		&orderID, target.Driver(), &clientID,
		fmt.Sprintf("cancelled with reason %s", target.CancelReason()),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
