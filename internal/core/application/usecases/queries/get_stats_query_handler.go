package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetStatsQueryHandler computes the operator dashboard counters.
// One SQL statement, so all counters come from the same snapshot.
type GetStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatsQueryHandler creates a handler for stats queries.
func NewGetStatsQueryHandler(db *gorm.DB) GetStatsQueryHandler {
	return GetStatsQueryHandler{db: db}
}

// Handle executes the query and returns the counters.
func (h GetStatsQueryHandler) Handle(ctx context.Context, query GetStatsQuery) (GetStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatsQueryResponse{}, err
	}

	var resp GetStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status IN ('NEW', 'BROADCAST', 'ASSIGNED')),
			(SELECT COUNT(*) FROM orders WHERE status = 'COMPLETED'),
			(SELECT COUNT(*) FROM orders WHERE status = 'CANCELLED'),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM drivers WHERE account_status = 'ACTIVE'),
			(SELECT COUNT(*) FROM drivers WHERE busy = true),
			(SELECT COUNT(*) FROM clients)
	`).Row()

	err := row.Scan(
		&resp.OrdersTotal,
		&resp.OrdersActive,
		&resp.OrdersCompleted,
		&resp.OrdersCancelled,
		&resp.DriversTotal,
		&resp.DriversActive,
		&resp.DriversBusy,
		&resp.ClientsTotal,
	)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}

	return resp, nil
}
