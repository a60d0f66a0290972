package commands

import (
	"errors"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrBroadcastOrderCommandIsNotConstructed is returned when the command was
// created without the constructor.
var ErrBroadcastOrderCommandIsNotConstructed = errors.New(
	"BroadcastOrderCommand must be created via NewBroadcastOrderCommand constructor")

// BroadcastOrderCommand announces an order in New status to the driver pool.
type BroadcastOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBroadcastOrderCommand creates a broadcast command for the given order.
func NewBroadcastOrderCommand(orderID kernel.UUID) (BroadcastOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return BroadcastOrderCommand{}, err
	}

	return BroadcastOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to broadcast.
func (c BroadcastOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate checks that the command was properly constructed.
func (c BroadcastOrderCommand) Validate() error {
	return c.guard.Validate(ErrBroadcastOrderCommandIsNotConstructed)
}
