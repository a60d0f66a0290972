package queries

import (
	"context"
	"database/sql"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database, newest first.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns order read models.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
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
	`
	args := make([]any, 0, 2)
	if query.Status() != nil {
		sqlText += ` WHERE status = ?`
		args = append(args, query.Status().String())
	}
	sqlText += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
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

// scanOrderRow reads one order row in the column order the order queries select.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var resp OrderResponse
	var id, clientID uuid.UUID
	var driverID uuid.NullUUID
	var statusText, cancelReasonText string
	var assignedAt, finishedAt sql.NullTime

	err := rows.Scan(
		&id,
		&clientID,
		&driverID,
		&resp.Origin,
		&resp.Destination,
		&resp.Comment,
		&statusText,
		&cancelReasonText,
		&resp.CreatedAt,
		&assignedAt,
		&finishedAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return OrderResponse{}, err
	}
	if driverID.Valid {
		parsed, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.DriverID = &parsed
	}

	if resp.Status, err = order.StatusFromString(statusText); err != nil {
		return OrderResponse{}, err
	}
	if resp.CancelReason, err = order.CancelReasonFromString(cancelReasonText); err != nil {
		return OrderResponse{}, err
	}

	if assignedAt.Valid {
		resp.AssignedAt = &assignedAt.Time
	}
	if finishedAt.Valid {
		resp.FinishedAt = &finishedAt.Time
	}

	return resp, nil
}
