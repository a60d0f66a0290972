package commands

import (
	"errors"
	"strings"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrUpdateDriverProfileCommandIsNotConstructed is returned when the command
// was created without the constructor.
var ErrUpdateDriverProfileCommandIsNotConstructed = errors.New(
	"UpdateDriverProfileCommand must be created via NewUpdateDriverProfileCommand constructor")

// UpdateDriverProfileCommand fills or amends a driver's phone and vehicle
// details. Blank fields keep their stored values.
type UpdateDriverProfileCommand struct {
	driverID     kernel.UUID
	phone        string
	vehicleBrand string
	vehicleModel string
	vehicleColor string
	vehiclePlate string

	guard guard.ConstructorGuard
}

// NewUpdateDriverProfileCommand creates a profile update command.
func NewUpdateDriverProfileCommand(
	driverID kernel.UUID, phone, vehicleBrand, vehicleModel, vehicleColor, vehiclePlate string,
) (UpdateDriverProfileCommand, error) {
	if err := driverID.Validate(); err != nil {
		return UpdateDriverProfileCommand{}, err
	}

	return UpdateDriverProfileCommand{
		driverID:     driverID,
		phone:        strings.TrimSpace(phone),
		vehicleBrand: strings.TrimSpace(vehicleBrand),
		vehicleModel: strings.TrimSpace(vehicleModel),
		vehicleColor: strings.TrimSpace(vehicleColor),
		vehiclePlate: strings.TrimSpace(vehiclePlate),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the identifier of the driver to update.
func (c UpdateDriverProfileCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Phone returns the driver's phone number.
func (c UpdateDriverProfileCommand) Phone() string {
	return c.phone
}

// VehicleBrand returns the vehicle brand.
func (c UpdateDriverProfileCommand) VehicleBrand() string {
	return c.vehicleBrand
}

// VehicleModel returns the vehicle model.
func (c UpdateDriverProfileCommand) VehicleModel() string {
	return c.vehicleModel
}

// VehicleColor returns the vehicle color.
func (c UpdateDriverProfileCommand) VehicleColor() string {
	return c.vehicleColor
}

// VehiclePlate returns the vehicle plate number.
func (c UpdateDriverProfileCommand) VehiclePlate() string {
	return c.vehiclePlate
}

// Validate checks that the command was properly constructed.
func (c UpdateDriverProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverProfileCommandIsNotConstructed)
}
