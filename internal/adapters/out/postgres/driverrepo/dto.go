// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
package driverrepo

import (
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The Telegram identity is unique: drivers are looked up by it on every
// contact and registered lazily when absent.
type DriverDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TelegramID    int64     `gorm:"uniqueIndex"`
	Username      string
	FirstName     string
	LastName      string
	Phone         string
	VehicleBrand  string
	VehicleModel  string
	VehicleColor  string
	VehiclePlate  string
	AccountStatus string `gorm:"type:varchar(16);index"`
	Busy          bool
	CreatedAt     time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(driver *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:            driver.ID().Bytes(),
		TelegramID:    driver.TelegramID(),
		Username:      driver.Username(),
		FirstName:     driver.FirstName(),
		LastName:      driver.LastName(),
		Phone:         driver.Phone(),
		VehicleBrand:  driver.VehicleBrand(),
		VehicleModel:  driver.VehicleModel(),
		VehicleColor:  driver.VehicleColor(),
		VehiclePlate:  driver.VehiclePlate(),
		AccountStatus: driver.AccountStatus().String(),
		Busy:          driver.IsBusy(),
		CreatedAt:     driver.CreatedAt(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	accountStatus, err := driver.AccountStatusFromString(dto.AccountStatus)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.TelegramID,
		dto.Username,
		dto.FirstName,
		dto.LastName,
		dto.Phone,
		dto.VehicleBrand,
		dto.VehicleModel,
		dto.VehicleColor,
		dto.VehiclePlate,
		accountStatus,
		dto.Busy,
		dto.CreatedAt,
	)
}

// toProfileMap lists the contact and vehicle columns of a driver row.
// A map is used instead of the struct so that cleared fields reach the
// database. The exclusivity-bearing busy flag and account_status are
// deliberately absent: each has its own UPDATE path, so a stale profile
// write cannot overwrite a concurrent assignment or block.
func toProfileMap(dto DriverDTO) map[string]any {
	return map[string]any{
		"username":      dto.Username,
		"first_name":    dto.FirstName,
		"last_name":     dto.LastName,
		"phone":         dto.Phone,
		"vehicle_brand": dto.VehicleBrand,
		"vehicle_model": dto.VehicleModel,
		"vehicle_color": dto.VehicleColor,
		"vehicle_plate": dto.VehiclePlate,
	}
}
