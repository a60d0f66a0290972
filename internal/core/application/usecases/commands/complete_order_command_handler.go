package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler finishes a ride.
// The order moves from Assigned to Completed and its driver returns to the
// available pool, both in one transaction.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	recorder   Recorder
}

// NewCompleteOrderCommandHandler creates a handler for order completion operations.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, recorder Recorder) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the completion command.
// Returns InvalidStateError when the order is not in Assigned status.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	if err = target.Complete(); err != nil {
		return err
	}
	if err = orderRepo.UpdateGuarded(ctx, target, order.Assigned); err != nil {
		return err
	}

	assignee, err := driverRepo.Get(ctx, *target.Driver())
	if err != nil {
		return err
	}
	if err = assignee.Release(); err != nil {
		return err
	}
	if err = driverRepo.Release(ctx, assignee); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordCompleted(ctx, target, assignee.ID(), cmd.Actor())
	return nil
}

func (h CompleteOrderCommandHandler) recordCompleted(
	ctx context.Context, target *order.Order, driverID kernel.UUID, actor order.Actor,
) {
	orderID := target.ID()
	clientID := target.ClientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.OrderCompleted,
		&orderID, &driverID, &clientID,
		fmt.Sprintf("%s -> %s, completed by %s", target.Origin(), target.Destination(), actor),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
