package commands

import (
	"errors"
	"strings"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOriginIsRequired      = errors.New("origin is required")
	ErrDestinationIsRequired = errors.New("destination is required")
)

// CreateOrderCommand represents a request to place a new ride order.
// Encapsulates the client, the pickup and drop-off addresses, and an
// optional note for the driver.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, clientID, "Lenina 1", "Airport", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, recorder)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	clientID    kernel.UUID
	origin      string
	destination string
	comment     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new ride order.
// Validates that both identifiers are valid and both addresses are non-blank.
func NewCreateOrderCommand(
	orderID, clientID kernel.UUID,
	origin, destination, comment string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setOrigin(origin),
		cmd.setDestination(destination),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.comment = strings.TrimSpace(comment)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the client placing the order.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Origin returns the pickup address.
func (c CreateOrderCommand) Origin() string {
	return c.origin
}

// Destination returns the drop-off address.
func (c CreateOrderCommand) Destination() string {
	return c.destination
}

// Comment returns the optional note for the driver.
func (c CreateOrderCommand) Comment() string {
	return c.comment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setOrigin(origin string) error {
	if strings.TrimSpace(origin) == "" {
		return ErrOriginIsRequired
	}

	c.origin = strings.TrimSpace(origin)
	return nil
}

func (c *CreateOrderCommand) setDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return ErrDestinationIsRequired
	}

	c.destination = strings.TrimSpace(destination)
	return nil
}
