package queries

import (
	"errors"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrGetClientsQueryIsNotConstructed is returned when the query was created
// without the constructor.
var ErrGetClientsQueryIsNotConstructed = errors.New(
	"GetClientsQuery must be created via NewGetClientsQuery constructor")

// GetClientsQuery retrieves all registered clients.
type GetClientsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetClientsQuery creates a client listing query.
func NewGetClientsQuery() GetClientsQuery {
	return GetClientsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetClientsQuery) Validate() error {
	return q.guard.Validate(ErrGetClientsQueryIsNotConstructed)
}

// ClientResponse represents a client in the read model.
type ClientResponse struct {
	ID         kernel.UUID
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Phone      string
	CreatedAt  time.Time
}
