package ports

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their lifecycle status and client.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	// Returns ConflictError if the client already holds an active order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveByClient retrieves the client's active order, that is, the
	// order in New, Broadcast, or Assigned status. Returns (nil, nil) when
	// the client has no active order: absence is not an error.
	GetActiveByClient(ctx context.Context, clientID kernel.UUID) (*order.Order, error)

	// GetAllInNewStatus retrieves orders still in New status, oldest first.
	// Used by the broadcast retry job to re-drive offers that never reached
	// the drivers chat.
	GetAllInNewStatus(ctx context.Context) ([]*order.Order, error)

	// UpdateGuarded persists the aggregate's new state only if the stored
	// row is still in one of the expected statuses. The UPDATE carries the
	// status predicate so that of two concurrent writers exactly one
	// commits; the loser gets InvalidStateError and must roll back.
	UpdateGuarded(ctx context.Context, aggregate *order.Order, expected ...order.Status) error
}
