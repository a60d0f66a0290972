package queries

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriversQueryHandler lists drivers from the database.
// The availableOnly filter mirrors the dispatch eligibility check: an
// active account that is not on a trip.
type GetDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetDriversQueryHandler creates a handler for driver listing queries.
func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

// Handle executes the query and returns driver read models sorted by
// registration time.
func (h GetDriversQueryHandler) Handle(ctx context.Context, query GetDriversQuery) ([]DriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			telegram_id,
			username,
			first_name,
			last_name,
			phone,
			vehicle_brand,
			vehicle_model,
			vehicle_color,
			vehicle_plate,
			account_status,
			busy,
			created_at
		FROM drivers
	`
	if query.AvailableOnly() {
		sqlText += ` WHERE account_status = 'ACTIVE' AND busy = false`
	}
	sqlText += ` ORDER BY created_at`

	rows, err := h.db.WithContext(ctx).Raw(sqlText).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]DriverResponse, 0)
	for rows.Next() {
		var resp DriverResponse
		var id uuid.UUID
		var accountStatusText string

		err = rows.Scan(
			&id,
			&resp.TelegramID,
			&resp.Username,
			&resp.FirstName,
			&resp.LastName,
			&resp.Phone,
			&resp.VehicleBrand,
			&resp.VehicleModel,
			&resp.VehicleColor,
			&resp.VehiclePlate,
			&accountStatusText,
			&resp.Busy,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.AccountStatus, err = driver.AccountStatusFromString(accountStatusText); err != nil {
			return nil, err
		}

		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
