package queries

import (
	"errors"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetStatsQueryIsNotConstructed is returned when the query was created
// without the constructor.
var ErrGetStatsQueryIsNotConstructed = errors.New(
	"GetStatsQuery must be created via NewGetStatsQuery constructor")

// GetStatsQuery retrieves service-wide counters for the operator dashboard.
type GetStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatsQuery creates a stats query.
func NewGetStatsQuery() GetStatsQuery {
	return GetStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatsQueryIsNotConstructed)
}

// GetStatsQueryResponse holds service-wide counters taken in one snapshot.
type GetStatsQueryResponse struct {
	OrdersTotal     int
	OrdersActive    int
	OrdersCompleted int
	OrdersCancelled int
	DriversTotal    int
	DriversActive   int
	DriversBusy     int
	ClientsTotal    int
}
