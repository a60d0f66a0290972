package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetClientOrderHistoryQueryHandler lists a client's orders, newest first.
type GetClientOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetClientOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetClientOrderHistoryQueryHandler(db *gorm.DB) GetClientOrderHistoryQueryHandler {
	return GetClientOrderHistoryQueryHandler{db: db}
}

// Handle executes the query and returns order read models.
func (h GetClientOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetClientOrderHistoryQuery,
) ([]OrderResponse, error) {
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
		ORDER BY created_at DESC
		LIMIT ?
	`, query.ClientID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
