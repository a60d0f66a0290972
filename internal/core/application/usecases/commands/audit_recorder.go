package commands

import (
	"context"
	"log/slog"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"
)

// AuditRecorder writes one audit entry per committed business transition.
//
// Entries are appended outside the command's transaction, after Commit: a
// failed audit insert inside the transaction would poison it and fail the
// business operation, which the audit trail must never do. Failures are
// reported to the operational log instead.
type AuditRecorder struct {
	repo   ports.AuditRepository
	logger *slog.Logger
}

// NewAuditRecorder creates an AuditRecorder writing through the given
// repository. The repository must not be bound to a command transaction.
func NewAuditRecorder(repo ports.AuditRepository, logger *slog.Logger) AuditRecorder {
	return AuditRecorder{
		repo:   repo,
		logger: logger.With("component", "audit"),
	}
}

// Record appends the entry, logging and swallowing any failure.
func (r AuditRecorder) Record(ctx context.Context, entry *audit.Entry) {
	if err := entry.Validate(); err != nil {
		r.logger.ErrorContext(ctx, "dropping invalid audit entry", "error", err)
		return
	}

	if err := r.repo.Add(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "failed to append audit entry",
			"action", entry.Action().String(),
			"error", err,
		)
	}
}
