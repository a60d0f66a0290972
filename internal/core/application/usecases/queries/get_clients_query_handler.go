package queries

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetClientsQueryHandler lists registered clients.
type GetClientsQueryHandler struct {
	db *gorm.DB
}

// NewGetClientsQueryHandler creates a handler for client listing queries.
func NewGetClientsQueryHandler(db *gorm.DB) GetClientsQueryHandler {
	return GetClientsQueryHandler{db: db}
}

// Handle executes the query and returns client read models sorted by
// registration time.
func (h GetClientsQueryHandler) Handle(ctx context.Context, query GetClientsQuery) ([]ClientResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			telegram_id,
			username,
			first_name,
			last_name,
			phone,
			created_at
		FROM clients
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]ClientResponse, 0)
	for rows.Next() {
		var resp ClientResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.TelegramID,
			&resp.Username,
			&resp.FirstName,
			&resp.LastName,
			&resp.Phone,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		clients = append(clients, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}
