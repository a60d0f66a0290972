package queries

import (
	"errors"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetDriversQueryIsNotConstructed is returned when the query was created
// without the constructor.
var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor")

// GetDriversQuery retrieves drivers, optionally narrowed to those who can
// take an order right now (active account and not busy).
type GetDriversQuery struct {
	availableOnly bool

	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a driver listing query.
func NewGetDriversQuery(availableOnly bool) GetDriversQuery {
	return GetDriversQuery{
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}
}

// AvailableOnly reports whether only available drivers are requested.
func (q GetDriversQuery) AvailableOnly() bool {
	return q.availableOnly
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// DriverResponse represents a driver in the read model.
type DriverResponse struct {
	ID            kernel.UUID
	TelegramID    int64
	Username      string
	FirstName     string
	LastName      string
	Phone         string
	VehicleBrand  string
	VehicleModel  string
	VehicleColor  string
	VehiclePlate  string
	AccountStatus driver.AccountStatus
	Busy          bool
	CreatedAt     time.Time
}
