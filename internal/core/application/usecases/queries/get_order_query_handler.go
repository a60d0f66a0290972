package queries

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model by id.
// Lifecycle endpoints use it to answer with the state the transition
// actually committed.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no order
// with the given id exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderResponse, error) {
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
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
