package queries

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditLogQueryHandler reads the append-only audit trail.
// Entries come back oldest first so the trail reads as a timeline.
type GetAuditLogQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditLogQueryHandler creates a handler for audit log queries.
func NewGetAuditLogQueryHandler(db *gorm.DB) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{db: db}
}

// Handle executes the query and returns audit entry read models.
func (h GetAuditLogQueryHandler) Handle(
	ctx context.Context,
	query GetAuditLogQuery,
) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			action,
			order_id,
			driver_id,
			client_id,
			detail,
			created_at
		FROM audit_log
		WHERE 1 = 1
	`
	args := make([]any, 0, 4)
	if query.OrderID() != nil {
		sqlText += ` AND order_id = ?`
		args = append(args, query.OrderID().Bytes())
	}
	if query.DriverID() != nil {
		sqlText += ` AND driver_id = ?`
		args = append(args, query.DriverID().Bytes())
	}
	if query.ClientID() != nil {
		sqlText += ` AND client_id = ?`
		args = append(args, query.ClientID().Bytes())
	}
	sqlText += ` ORDER BY created_at, seq LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AuditEntryResponse, 0)
	for rows.Next() {
		var resp AuditEntryResponse
		var id uuid.UUID
		var orderID, driverID, clientID uuid.NullUUID
		var actionText string

		err = rows.Scan(
			&id,
			&actionText,
			&orderID,
			&driverID,
			&clientID,
			&resp.Detail,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.Action, err = audit.ActionFromString(actionText); err != nil {
			return nil, err
		}

		if resp.OrderID, err = optionalRef(orderID); err != nil {
			return nil, err
		}
		if resp.DriverID, err = optionalRef(driverID); err != nil {
			return nil, err
		}
		if resp.ClientID, err = optionalRef(clientID); err != nil {
			return nil, err
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func optionalRef(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
