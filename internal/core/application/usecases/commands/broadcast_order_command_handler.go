package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"
)

// BroadcastOrderCommandHandler announces a New order to the driver pool and
// promotes it to Broadcast.
//
// The gateway call happens between two short transactions, never inside one:
// a slow chat API must not hold row locks. The promotion is guarded on New
// status, so a concurrent assignment or cancellation that lands between the
// read and the write simply wins and the promotion reports InvalidStateError.
//
// Handle is idempotent for orders already in Broadcast status, which lets
// the retry job re-drive announcements safely.
type BroadcastOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.BroadcastGateway
	recorder   Recorder
}

// NewBroadcastOrderCommandHandler creates a handler for order broadcast operations.
func NewBroadcastOrderCommandHandler(
	uowFactory OrderUoWFactory, gateway ports.BroadcastGateway, recorder Recorder,
) BroadcastOrderCommandHandler {
	return BroadcastOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		recorder:   recorder,
	}
}

// Handle processes the order broadcast command.
func (h BroadcastOrderCommandHandler) Handle(ctx context.Context, cmd BroadcastOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	target, err := h.readOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if target == nil {
		// Already broadcast, nothing left to announce.
		return nil
	}

	if err = h.gateway.Broadcast(ctx, target.ID(), target.Origin(), target.Destination(), target.Comment()); err != nil {
		return err
	}

	if err = h.promote(ctx, target); err != nil {
		return err
	}

	h.recordBroadcast(ctx, target)
	return nil
}

// readOrder fetches the order and checks it is eligible for broadcasting.
// Returns (nil, nil) when the order is already in Broadcast status.
func (h BroadcastOrderCommandHandler) readOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if target.Status() == order.Broadcast {
		return nil, nil
	}
	if err = target.MarkBroadcast(); err != nil {
		return nil, err
	}

	return target, nil
}

func (h BroadcastOrderCommandHandler) promote(ctx context.Context, target *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().UpdateGuarded(ctx, target, order.New); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h BroadcastOrderCommandHandler) recordBroadcast(ctx context.Context, target *order.Order) {
	orderID := target.ID()
	clientID := target.ClientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.OrderBroadcast,
		&orderID, nil, &clientID,
		fmt.Sprintf("%s -> %s", target.Origin(), target.Destination()),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
