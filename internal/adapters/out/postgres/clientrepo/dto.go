// Package clientrepo provides data transfer objects and mapping functions for client persistence.
package clientrepo

import (
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/client"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO represents the database structure for persisting client aggregates.
// The Telegram identity is unique: clients are looked up by it on every
// contact and registered when absent.
type ClientDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TelegramID int64     `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
	Phone      string
	CreatedAt  time.Time
}

// TableName specifies the database table name for client entities.
func (ClientDTO) TableName() string {
	return "clients"
}

// fromDomain converts a client domain aggregate to its database representation.
func fromDomain(client *client.Client) ClientDTO {
	return ClientDTO{
		ID:         client.ID().Bytes(),
		TelegramID: client.TelegramID(),
		Username:   client.Username(),
		FirstName:  client.FirstName(),
		LastName:   client.LastName(),
		Phone:      client.Phone(),
		CreatedAt:  client.CreatedAt(),
	}
}

// toDomain converts a database DTO to a client domain aggregate.
func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return client.RestoreClient(
		id,
		dto.TelegramID,
		dto.Username,
		dto.FirstName,
		dto.LastName,
		dto.Phone,
		dto.CreatedAt,
	)
}

// toUpdateMap lists the mutable columns of a client row. A map is used
// instead of the struct so that cleared fields reach the database.
func toUpdateMap(dto ClientDTO) map[string]any {
	return map[string]any{
		"username":   dto.Username,
		"first_name": dto.FirstName,
		"last_name":  dto.LastName,
		"phone":      dto.Phone,
	}
}
