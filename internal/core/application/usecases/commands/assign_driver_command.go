package commands

import (
	"errors"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrAssignDriverCommandIsNotConstructed is returned when the command was
// created without the constructor.
var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor")

// AssignDriverCommand claims an order for a driver.
// The same command serves a driver accepting a broadcast offer and a
// dispatcher assigning manually; the actor records which path was taken.
type AssignDriverCommand struct {
	orderID  kernel.UUID
	driverID kernel.UUID
	actor    order.Actor

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates an assignment command.
// Only drivers and admins may assign.
func NewAssignDriverCommand(orderID, driverID kernel.UUID, actor order.Actor) (AssignDriverCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	if actor != order.ActorDriver && actor != order.ActorAdmin {
		return AssignDriverCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"actor is invalid",
			fmt.Errorf("%s cannot assign orders", actor),
		)
	}

	return AssignDriverCommand{
		orderID:  orderID,
		driverID: driverID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to claim.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the claiming driver.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Actor returns who requested the assignment.
func (c AssignDriverCommand) Actor() order.Actor {
	return c.actor
}

// Validate checks that the command was properly constructed.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}
