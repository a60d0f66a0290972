package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetActiveOrderQueryHandler retrieves a client's in-flight order.
// Absence of an active order is a valid outcome, not an error; Handle
// returns nil in that case.
type GetActiveOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrderQueryHandler creates a handler for active order lookups.
func NewGetActiveOrderQueryHandler(db *gorm.DB) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{db: db}
}

// Handle executes the query. Returns (nil, nil) when the client has no
// active order.
func (h GetActiveOrderQueryHandler) Handle(ctx context.Context, query GetActiveOrderQuery) (*OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			driver_id,
			origin,
			destination,
			comment,
			status,
			cancel_reason,
			created_at,
			assigned_at,
			finished_at
		FROM orders
		WHERE client_id = ?
		  AND status IN ('NEW', 'BROADCAST', 'ASSIGNED')
		LIMIT 1
	`, query.ClientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
