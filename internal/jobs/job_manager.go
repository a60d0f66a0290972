package jobs

import (
	"fmt"
	"log/slog"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	broadcastRetryJob *BroadcastRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	broadcastOrderHandler commands.BroadcastOrderCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		broadcastRetryJob: NewBroadcastRetryJob(uowFactory, broadcastOrderHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.broadcastRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start broadcast retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.broadcastRetryJob.Stop()
}
