package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// BroadcastRetryJob re-announces orders stuck in the New status.
//
// An order lands in New and stays there when the drivers chat was
// unreachable at creation time. Every five seconds the job picks up all
// such orders and drives the broadcast operation for each; the operation
// itself is idempotent, so a concurrent announcement is harmless.
type BroadcastRetryJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.BroadcastOrderCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewBroadcastRetryJob creates a job that retries stuck announcements.
func NewBroadcastRetryJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.BroadcastOrderCommandHandler,
	logger *slog.Logger,
) *BroadcastRetryJob {
	return &BroadcastRetryJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "broadcast_retry_job"),
	}
}

// Start begins the broadcast retry job to run every five seconds.
func (j *BroadcastRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Broadcast retry job started (running every 5 seconds)")
	return nil
}

// Stop stops the broadcast retry job.
func (j *BroadcastRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Broadcast retry job stopped")
}

func (j *BroadcastRetryJob) run() {
	ctx := context.Background()

	stuck, err := j.uowFactory.Create().OrderRepository().GetAllInNewStatus(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list orders pending broadcast", "error", err)
		return
	}

	for _, target := range stuck {
		cmd, err := commands.NewBroadcastOrderCommand(target.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build broadcast command",
				"order_id", target.ID().String(), "error", err)
			continue
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			// InvalidState means the order moved on since the listing; the
			// race winner already handled it.
			if !errors.Is(err, errs.ErrInvalidState) {
				j.logger.WarnContext(ctx, "Order broadcast retry failed",
					"order_id", target.ID().String(), "error", err)
			}
		}
	}
}
