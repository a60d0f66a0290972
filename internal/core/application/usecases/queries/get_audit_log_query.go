package queries

import (
	"errors"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetAuditLogQueryIsNotConstructed is returned when the query was created
// without the constructor.
var ErrGetAuditLogQueryIsNotConstructed = errors.New(
	"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor")

const defaultAuditLogLimit = 100

// GetAuditLogQuery retrieves audit entries in chronological order, optionally
// narrowed to one order, driver, or client.
type GetAuditLogQuery struct {
	orderID  *kernel.UUID
	driverID *kernel.UUID
	clientID *kernel.UUID
	limit    int

	guard guard.ConstructorGuard
}

// NewGetAuditLogQuery creates an audit log query.
// Nil references mean no filtering; a non-positive limit falls back to the default.
func NewGetAuditLogQuery(orderID, driverID, clientID *kernel.UUID, limit int) (GetAuditLogQuery, error) {
	for _, ref := range []*kernel.UUID{orderID, driverID, clientID} {
		if ref == nil {
			continue
		}
		if err := ref.Validate(); err != nil {
			return GetAuditLogQuery{}, err
		}
	}
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}

	return GetAuditLogQuery{
		orderID:  orderID,
		driverID: driverID,
		clientID: clientID,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the optional order filter.
func (q GetAuditLogQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// DriverID returns the optional driver filter.
func (q GetAuditLogQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// ClientID returns the optional client filter.
func (q GetAuditLogQuery) ClientID() *kernel.UUID {
	return q.clientID
}

// Limit returns the maximum number of rows to return.
func (q GetAuditLogQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

// AuditEntryResponse represents one audit entry in the read model.
type AuditEntryResponse struct {
	ID        kernel.UUID
	Action    audit.Action
	OrderID   *kernel.UUID
	DriverID  *kernel.UUID
	ClientID  *kernel.UUID
	Detail    string
	CreatedAt time.Time
}
