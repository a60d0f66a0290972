package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

var (
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrTelegramIDIsRequired is returned when attempting to create a driver
	// without a Telegram identity.
	ErrTelegramIDIsRequired = errs.NewValueIsRequiredError("telegram id")
)

// Driver represents a taxi driver in the system.
// It is an aggregate root that manages driver identity, vehicle profile,
// administrative account status, and trip occupancy.
//
// Key responsibilities:
//   - Managing driver identity (internal UUID plus stable Telegram identity)
//   - Tracking the vehicle profile the driver registers with
//   - Deriving registration completeness from the vehicle profile
//   - Tracking availability: account status ACTIVE/BLOCKED and the busy flag
//
// Business rules:
//   - Drivers are created lazily on first contact, with an incomplete profile
//   - Registration is complete once all four vehicle fields are filled
//   - A driver is available for assignment only when ACTIVE and not busy
//   - The busy flag is held by exactly one assigned order at a time
//   - Blocking does not clear the busy flag of an in-progress trip
type Driver struct {
	// id uniquely identifies the driver inside the service
	id kernel.UUID
	// telegramID is the stable external identity the driver contacts us with
	telegramID int64
	// username is the driver's Telegram username, may be empty
	username string
	// firstName and lastName are the driver's display name parts
	firstName string
	lastName  string
	// phone is the driver's contact number, empty until provided
	phone string
	// vehicleBrand, vehicleModel, vehicleColor, vehiclePlate form the vehicle profile
	vehicleBrand string
	vehicleModel string
	vehicleColor string
	vehiclePlate string
	// accountStatus is the administrative ACTIVE/BLOCKED state
	accountStatus AccountStatus
	// busy reports whether the driver currently holds an assigned order
	busy bool
	// createdAt is when the driver first contacted the service
	createdAt time.Time
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver on first contact.
// The driver starts Active, not busy, with an empty vehicle profile;
// registration completes later through UpdateProfile.
//
// Parameters:
//   - id: Unique internal identifier (must be a valid UUID)
//   - telegramID: Stable Telegram identity (must be non-zero)
//   - username, firstName, lastName: Display fields, any of which may be empty
//
// Returns:
//   - *Driver: A driver with an incomplete profile
//   - error: Validation error if id or telegramID is invalid
func NewDriver(id kernel.UUID, telegramID int64, username, firstName, lastName string) (*Driver, error) {
	driver := &Driver{
		accountStatus: Active,
		createdAt:     time.Now().UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setTelegramID(telegramID),
	); err != nil {
		return nil, err
	}

	driver.UpdateContact(username, firstName, lastName)
	return driver, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// including the vehicle profile, account status, busy flag, and creation time.
//
// Returns:
//   - *Driver: Restored driver aggregate
//   - error: Validation error if the persisted state is inconsistent
func RestoreDriver(
	id kernel.UUID,
	telegramID int64,
	username, firstName, lastName, phone string,
	vehicleBrand, vehicleModel, vehicleColor, vehiclePlate string,
	accountStatus AccountStatus,
	busy bool,
	createdAt time.Time,
) (*Driver, error) {
	driver := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setTelegramID(telegramID),
		accountStatus.Validate(),
	); err != nil {
		return nil, err
	}

	driver.username = username
	driver.firstName = firstName
	driver.lastName = lastName
	driver.phone = phone
	driver.vehicleBrand = vehicleBrand
	driver.vehicleModel = vehicleModel
	driver.vehicleColor = vehicleColor
	driver.vehiclePlate = vehiclePlate
	driver.accountStatus = accountStatus
	driver.busy = busy
	driver.createdAt = createdAt
	return driver, nil
}

// IsEqual compares two drivers for equality based on their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks if the Driver was properly constructed using a constructor.
// The zero value of Driver is invalid and will fail this validation.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the unique internal identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// TelegramID returns the driver's stable Telegram identity.
func (d *Driver) TelegramID() int64 {
	return d.telegramID
}

// Username returns the driver's Telegram username, empty if not set.
func (d *Driver) Username() string {
	return d.username
}

// FirstName returns the driver's first name.
func (d *Driver) FirstName() string {
	return d.firstName
}

// LastName returns the driver's last name.
func (d *Driver) LastName() string {
	return d.lastName
}

// Phone returns the driver's contact number, empty until provided.
func (d *Driver) Phone() string {
	return d.phone
}

// VehicleBrand returns the registered vehicle brand, empty until provided.
func (d *Driver) VehicleBrand() string {
	return d.vehicleBrand
}

// VehicleModel returns the registered vehicle model, empty until provided.
func (d *Driver) VehicleModel() string {
	return d.vehicleModel
}

// VehicleColor returns the registered vehicle color, empty until provided.
func (d *Driver) VehicleColor() string {
	return d.vehicleColor
}

// VehiclePlate returns the registered plate number, empty until provided.
func (d *Driver) VehiclePlate() string {
	return d.vehiclePlate
}

// AccountStatus returns the administrative ACTIVE/BLOCKED state.
func (d *Driver) AccountStatus() AccountStatus {
	return d.accountStatus
}

// IsBusy reports whether the driver currently holds an assigned order.
func (d *Driver) IsBusy() bool {
	return d.busy
}

// CreatedAt returns when the driver first contacted the service.
func (d *Driver) CreatedAt() time.Time {
	return d.createdAt
}

// RegistrationComplete reports whether the driver has filled in the whole
// vehicle profile. Only registered drivers are shown to dispatchers as
// assignable and only they receive broadcast offers.
func (d *Driver) RegistrationComplete() bool {
	return d.vehicleBrand != "" && d.vehicleModel != "" && d.vehicleColor != "" && d.vehiclePlate != ""
}

// IsAvailable reports whether the driver can take an order right now:
// the account is Active and the driver is not on a trip.
func (d *Driver) IsAvailable() bool {
	return d.accountStatus == Active && !d.busy
}

// UpdateContact refreshes the display fields from a fresh Telegram contact.
// Empty values leave the corresponding field unchanged.
func (d *Driver) UpdateContact(username, firstName, lastName string) {
	if v := strings.TrimSpace(username); v != "" {
		d.username = v
	}
	if v := strings.TrimSpace(firstName); v != "" {
		d.firstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		d.lastName = v
	}
}

// UpdateProfile merges the provided phone and vehicle fields into the
// driver's profile. Empty values leave the corresponding field unchanged,
// so partial updates are possible.
//
// Returns:
//   - completed: true if this update transitioned the profile from
//     incomplete to complete (the moment the driver counts as registered)
func (d *Driver) UpdateProfile(phone, brand, model, color, plate string) (completed bool) {
	wasComplete := d.RegistrationComplete()

	if v := strings.TrimSpace(phone); v != "" {
		d.phone = v
	}
	if v := strings.TrimSpace(brand); v != "" {
		d.vehicleBrand = v
	}
	if v := strings.TrimSpace(model); v != "" {
		d.vehicleModel = v
	}
	if v := strings.TrimSpace(color); v != "" {
		d.vehicleColor = v
	}
	if v := strings.TrimSpace(plate); v != "" {
		d.vehiclePlate = v
	}

	return !wasComplete && d.RegistrationComplete()
}

// MarkBusy records that the driver took an order.
//
// Returns:
//   - DriverUnavailableError if the driver is blocked or already busy
//
// Note that the in-memory transition only validates this aggregate;
// protection against two concurrent assignments of the same driver is
// provided by the availability-guarded update in the persistence layer.
func (d *Driver) MarkBusy() error {
	if d.accountStatus != Active {
		return errs.NewDriverUnavailableErrorWithCause(
			"driver",
			fmt.Errorf("driver %s is blocked", d.id),
		)
	}
	if d.busy {
		return errs.NewDriverUnavailableErrorWithCause(
			"driver",
			fmt.Errorf("driver %s is busy", d.id),
		)
	}

	d.busy = true
	return nil
}

// Release clears the busy flag when the driver's trip completes or is
// cancelled by a dispatcher.
//
// Returns:
//   - InvalidStateError if the driver is not busy
func (d *Driver) Release() error {
	if !d.busy {
		return errs.NewInvalidStateErrorWithCause(
			"driver",
			fmt.Errorf("driver %s is not busy", d.id),
		)
	}

	d.busy = false
	return nil
}

// Block bars the driver from taking new orders.
// An in-progress trip is not interrupted: the busy flag is left as is
// and the current order proceeds to completion or admin cancellation.
//
// Returns:
//   - InvalidStateError if the driver is already blocked
func (d *Driver) Block() error {
	if d.accountStatus == Blocked {
		return errs.NewInvalidStateErrorWithCause(
			"driver",
			fmt.Errorf("driver %s is already blocked", d.id),
		)
	}

	d.accountStatus = Blocked
	return nil
}

// Unblock returns a blocked driver to the Active state.
//
// Returns:
//   - InvalidStateError if the driver is not blocked
func (d *Driver) Unblock() error {
	if d.accountStatus == Active {
		return errs.NewInvalidStateErrorWithCause(
			"driver",
			fmt.Errorf("driver %s is not blocked", d.id),
		)
	}

	d.accountStatus = Active
	return nil
}

// setID sets the driver's unique identifier with validation.
// This is an internal setter used during construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setTelegramID sets the driver's Telegram identity with validation.
// This is an internal setter used during construction.
func (d *Driver) setTelegramID(telegramID int64) error {
	if telegramID == 0 {
		return ErrTelegramIDIsRequired
	}

	d.telegramID = telegramID
	return nil
}
