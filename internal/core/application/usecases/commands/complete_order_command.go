package commands

import (
	"errors"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrCompleteOrderCommandIsNotConstructed is returned when the command was
// created without the constructor.
var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor")

// CompleteOrderCommand finishes an assigned order and releases its driver.
type CompleteOrderCommand struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a completion command for the given order.
// Only the assigned driver or an admin may finish a ride.
func NewCompleteOrderCommand(orderID kernel.UUID, actor order.Actor) (CompleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}
	if actor != order.ActorDriver && actor != order.ActorAdmin {
		return CompleteOrderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"actor is invalid",
			fmt.Errorf("%s cannot complete orders", actor),
		)
	}

	return CompleteOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to complete.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the completion.
func (c CompleteOrderCommand) Actor() order.Actor {
	return c.actor
}

// Validate checks that the command was properly constructed.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}
