package commands

import (
	"errors"
	"strings"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// Command construction errors.
var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor")
	ErrDriverTelegramIDIsRequired = errors.New("driver telegram id must be a positive number")
)

// RegisterDriverCommand enrolls a driver by Telegram identity, or refreshes
// the contact fields of an already enrolled one.
type RegisterDriverCommand struct {
	driverID   kernel.UUID
	telegramID int64
	username   string
	firstName  string
	lastName   string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a driver registration command.
// driverID is used only when the Telegram identity is seen for the first time.
func NewRegisterDriverCommand(
	driverID kernel.UUID, telegramID int64, username, firstName, lastName string,
) (RegisterDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return RegisterDriverCommand{}, err
	}
	if telegramID <= 0 {
		return RegisterDriverCommand{}, ErrDriverTelegramIDIsRequired
	}

	return RegisterDriverCommand{
		driverID:   driverID,
		telegramID: telegramID,
		username:   strings.TrimSpace(username),
		firstName:  strings.TrimSpace(firstName),
		lastName:   strings.TrimSpace(lastName),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the identifier for a newly enrolled driver.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// TelegramID returns the driver's Telegram identifier.
func (c RegisterDriverCommand) TelegramID() int64 {
	return c.telegramID
}

// Username returns the driver's Telegram username.
func (c RegisterDriverCommand) Username() string {
	return c.username
}

// FirstName returns the driver's first name.
func (c RegisterDriverCommand) FirstName() string {
	return c.firstName
}

// LastName returns the driver's last name.
func (c RegisterDriverCommand) LastName() string {
	return c.lastName
}

// Validate checks that the command was properly constructed.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}
