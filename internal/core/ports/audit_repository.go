package ports

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for the append-only
// audit log. Entries are only ever added; reads go through the query
// layer directly.
type AuditRepository interface {
	// Add appends an audit entry.
	Add(ctx context.Context, entry *audit.Entry) error
}
