package queries

import (
	"errors"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetClientOrderHistoryQueryIsNotConstructed is returned when the query
// was created without the constructor.
var ErrGetClientOrderHistoryQueryIsNotConstructed = errors.New(
	"GetClientOrderHistoryQuery must be created via NewGetClientOrderHistoryQuery constructor")

const defaultHistoryLimit = 20

// GetClientOrderHistoryQuery retrieves a client's past and present orders,
// newest first.
type GetClientOrderHistoryQuery struct {
	clientID kernel.UUID
	limit    int

	guard guard.ConstructorGuard
}

// NewGetClientOrderHistoryQuery creates an order history query.
// A non-positive limit falls back to the default.
func NewGetClientOrderHistoryQuery(clientID kernel.UUID, limit int) (GetClientOrderHistoryQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetClientOrderHistoryQuery{}, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	return GetClientOrderHistoryQuery{
		clientID: clientID,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ClientID returns the client identifier.
func (q GetClientOrderHistoryQuery) ClientID() kernel.UUID {
	return q.clientID
}

// Limit returns the maximum number of rows to return.
func (q GetClientOrderHistoryQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetClientOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetClientOrderHistoryQueryIsNotConstructed)
}
