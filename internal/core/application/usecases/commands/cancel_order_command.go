package commands

import (
	"errors"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed is returned when the command was
// created without the constructor.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor")

// CancelOrderCommand cancels an active order on behalf of an actor.
// Clients may cancel only before assignment; admins may cancel any active
// order.
type CancelOrderCommand struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command.
func NewCancelOrderCommand(orderID kernel.UUID, actor order.Actor) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	if err := actor.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the cancellation.
func (c CancelOrderCommand) Actor() order.Actor {
	return c.actor
}

// Validate checks that the command was properly constructed.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
