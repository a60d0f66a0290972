// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetOrdersQueryIsNotConstructed is returned when the query was created
// without the constructor.
var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor")

const defaultOrdersLimit = 50

// GetOrdersQuery retrieves orders for the operator view, newest first,
// optionally filtered by status.
type GetOrdersQuery struct {
	status *order.Status
	limit  int
	guard  guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order listing query.
// A nil status means all statuses; a non-positive limit falls back to the default.
func NewGetOrdersQuery(status *order.Status, limit int) (GetOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if limit <= 0 {
		limit = defaultOrdersLimit
	}

	return GetOrdersQuery{
		status: status,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Status returns the optional status filter.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// Limit returns the maximum number of rows to return.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OrderResponse represents an order in the read model.
type OrderResponse struct {
	ID           kernel.UUID
	ClientID     kernel.UUID
	DriverID     *kernel.UUID
	Origin       string
	Destination  string
	Comment      string
	Status       order.Status
	CancelReason order.CancelReason
	CreatedAt    time.Time
	AssignedAt   *time.Time
	FinishedAt   *time.Time
}
