package commands

import (
	"context"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in New status after verifying the client exists and
// holds no other active order.
//
// The active-order invariant is enforced twice: a read inside the creation
// transaction yields a friendly ConflictError, and the partial unique index
// on active orders catches the race two concurrent creations can slip
// through the read.
//
// Broadcasting the fresh order to the driver pool is a separate follow-up
// step (see BroadcastOrderCommandHandler); the creation transaction never
// touches the gateway.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	recorder   Recorder
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, recorder Recorder) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the order creation command.
// Returns ObjectNotFoundError for an unknown client and ConflictError when
// the client already holds an active order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	placer, err := uow.ClientRepository().Get(ctx, cmd.ClientID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	active, err := orderRepo.GetActiveByClient(ctx, placer.ID())
	if err != nil {
		return err
	}
	if active != nil {
		return errs.NewConflictErrorWithCause(
			"client already has an active order",
			fmt.Errorf("order %s is %s", active.ID(), active.Status()),
		)
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), placer.ID(), cmd.Origin(), cmd.Destination(), cmd.Comment())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordCreated(ctx, newOrder)
	return nil
}

func (h CreateOrderCommandHandler) recordCreated(ctx context.Context, o *order.Order) {
	orderID := o.ID()
	clientID := o.ClientID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.OrderCreated,
		&orderID, nil, &clientID,
		fmt.Sprintf("%s -> %s", o.Origin(), o.Destination()),
	)
	if err != nil {
		return
	}
	h.recorder.Record(ctx, entry)
}
