package ports

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/client"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for client aggregates.
type ClientRepository interface {
	// Add persists a new client aggregate to storage.
	// Returns ConflictError if a client with the same Telegram id exists.
	Add(ctx context.Context, aggregate *client.Client) error

	// Update persists changes to an existing client aggregate.
	Update(ctx context.Context, aggregate *client.Client) error

	// Get retrieves a client aggregate by its unique identifier.
	// Returns ObjectNotFoundError if no such client exists.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)

	// GetByTelegramID retrieves a client by their Telegram identity.
	// Returns (nil, nil) when no client with that identity exists:
	// absence drives the get-or-create registration path.
	GetByTelegramID(ctx context.Context, telegramID int64) (*client.Client, error)
}
