package commands

import (
	"errors"
	"strings"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

var (
	ErrRegisterClientCommandIsNotConstructed = errors.New(
		"RegisterClientCommand must be created via NewRegisterClientCommand constructor",
	)
	ErrClientTelegramIDIsRequired = errors.New("telegram id is required")
)

// RegisterClientCommand represents a client contacting the service.
// The same command serves first contact (registration) and re-contact
// (profile refresh): the handler resolves which case applies by the
// Telegram identity.
type RegisterClientCommand struct { //nolint:recvcheck //using for validation
	clientID   kernel.UUID
	telegramID int64
	username   string
	firstName  string
	lastName   string
	phone      string

	guard guard.ConstructorGuard
}

// NewRegisterClientCommand creates a command to register or refresh a client.
// The clientID is used only when the contact turns out to be a first contact;
// on re-contact the existing client keeps its identifier.
func NewRegisterClientCommand(
	clientID kernel.UUID,
	telegramID int64,
	username, firstName, lastName, phone string,
) (RegisterClientCommand, error) {
	cmd := RegisterClientCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setTelegramID(telegramID),
	); err != nil {
		return RegisterClientCommand{}, err
	}

	cmd.username = strings.TrimSpace(username)
	cmd.firstName = strings.TrimSpace(firstName)
	cmd.lastName = strings.TrimSpace(lastName)
	cmd.phone = strings.TrimSpace(phone)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterClientCommand) Validate() error {
	return c.guard.Validate(ErrRegisterClientCommandIsNotConstructed)
}

// ClientID returns the identifier to use if a new client is created.
func (c RegisterClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

// TelegramID returns the client's Telegram identity.
func (c RegisterClientCommand) TelegramID() int64 {
	return c.telegramID
}

// Username returns the Telegram username, may be empty.
func (c RegisterClientCommand) Username() string {
	return c.username
}

// FirstName returns the client's first name, may be empty.
func (c RegisterClientCommand) FirstName() string {
	return c.firstName
}

// LastName returns the client's last name, may be empty.
func (c RegisterClientCommand) LastName() string {
	return c.lastName
}

// Phone returns the shared phone number, empty when not provided.
func (c RegisterClientCommand) Phone() string {
	return c.phone
}

func (c *RegisterClientCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *RegisterClientCommand) setTelegramID(telegramID int64) error {
	if telegramID == 0 {
		return ErrClientTelegramIDIsRequired
	}

	c.telegramID = telegramID
	return nil
}
