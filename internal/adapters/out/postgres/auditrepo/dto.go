// Package auditrepo persists the append-only audit log.
// Entries are only ever inserted; reads go through the query layer directly,
// so no mapping back to the domain is needed here.
package auditrepo

import (
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AuditEntryDTO represents the database structure for persisting audit entries.
// The party references are indexed so the log can be filtered per order,
// driver, or client.
type AuditEntryDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Seq is assigned by the database on insert and fixes the order of
	// entries that share a created_at timestamp.
	Seq       int64      `gorm:"autoIncrement;uniqueIndex"`
	Action    string     `gorm:"type:varchar(32);index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	DriverID  *uuid.UUID `gorm:"type:uuid;index"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	Detail    string
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (AuditEntryDTO) TableName() string {
	return "audit_log"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:        entry.ID().Bytes(),
		Action:    entry.Action().String(),
		OrderID:   optionalRef(entry.OrderID()),
		DriverID:  optionalRef(entry.DriverID()),
		ClientID:  optionalRef(entry.ClientID()),
		Detail:    entry.Detail(),
		CreatedAt: entry.CreatedAt(),
	}
}

// optionalRef converts an optional party reference to its column value.
func optionalRef(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	raw := id.Bytes()
	return &raw
}
