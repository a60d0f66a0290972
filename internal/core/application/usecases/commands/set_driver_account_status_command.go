package commands

import (
	"errors"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrSetDriverAccountStatusCommandIsNotConstructed is returned when the
// command was created without the constructor.
var ErrSetDriverAccountStatusCommandIsNotConstructed = errors.New(
	"SetDriverAccountStatusCommand must be created via NewSetDriverAccountStatusCommand constructor")

// SetDriverAccountStatusCommand blocks or unblocks a driver account.
type SetDriverAccountStatusCommand struct {
	driverID kernel.UUID
	status   driver.AccountStatus

	guard guard.ConstructorGuard
}

// NewSetDriverAccountStatusCommand creates an account status command.
func NewSetDriverAccountStatusCommand(
	driverID kernel.UUID, status driver.AccountStatus,
) (SetDriverAccountStatusCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetDriverAccountStatusCommand{}, err
	}
	if err := status.Validate(); err != nil {
		return SetDriverAccountStatusCommand{}, err
	}

	return SetDriverAccountStatusCommand{
		driverID: driverID,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the identifier of the target driver.
func (c SetDriverAccountStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Status returns the account status to apply.
func (c SetDriverAccountStatusCommand) Status() driver.AccountStatus {
	return c.status
}

// Validate checks that the command was properly constructed.
func (c SetDriverAccountStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAccountStatusCommandIsNotConstructed)
}
