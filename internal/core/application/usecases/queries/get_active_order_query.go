package queries

import (
	"errors"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetActiveOrderQueryIsNotConstructed is returned when the query was
// created without the constructor.
var ErrGetActiveOrderQueryIsNotConstructed = errors.New(
	"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor")

// GetActiveOrderQuery retrieves the client's order still in flight, if any.
// A client holds at most one such order.
type GetActiveOrderQuery struct {
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrderQuery creates a query for the client's active order.
func NewGetActiveOrderQuery(clientID kernel.UUID) (GetActiveOrderQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetActiveOrderQuery{}, err
	}

	return GetActiveOrderQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ClientID returns the client identifier.
func (q GetActiveOrderQuery) ClientID() kernel.UUID {
	return q.clientID
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}
