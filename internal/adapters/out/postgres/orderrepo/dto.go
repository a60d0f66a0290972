// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and client.
//
// The partial unique index on client_id enforces the single active order
// invariant at the storage level: active orders are exactly the rows with a
// NULL finished_at, and at most one of those may exist per client.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:uniq_orders_active_client,where:finished_at IS NULL"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	Origin       string
	Destination  string
	Comment      string
	Status       string `gorm:"type:varchar(16);index"`
	CancelReason string `gorm:"type:varchar(32)"`
	CreatedAt    time.Time
	AssignedAt   *time.Time
	FinishedAt   *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Status and cancel reason are persisted as their string tokens so that stored
// rows stay readable and guarded updates can predicate on them.
func fromDomain(order *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := order.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:           order.ID().Bytes(),
		ClientID:     order.ClientID().Bytes(),
		DriverID:     driverID,
		Origin:       order.Origin(),
		Destination:  order.Destination(),
		Comment:      order.Comment(),
		Status:       order.Status().String(),
		CancelReason: order.CancelReason().String(),
		CreatedAt:    order.CreatedAt(),
		AssignedAt:   order.AssignedAt(),
		FinishedAt:   order.FinishedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle timestamps and the
// driver reference using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	cancelReason, err := order.CancelReasonFromString(dto.CancelReason)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		clientID,
		driverID,
		dto.Origin,
		dto.Destination,
		dto.Comment,
		status,
		cancelReason,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.FinishedAt,
	)
}
