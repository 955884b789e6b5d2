package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PositionCleanupJob trims aged GPS observations from the position log.
// Runs hourly so the sheet never accumulates more than the retention window.
type PositionCleanupJob struct {
	handler   commands.CleanupPositionsCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPositionCleanupJob creates a new job for sweeping old position rows.
func NewPositionCleanupJob(handler commands.CleanupPositionsCommandHandler,
	retention time.Duration, logger *slog.Logger,
) *PositionCleanupJob {
	return &PositionCleanupJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "position_cleanup_job"),
	}
}

// Start begins the cleanup job to run at the top of every hour.
func (j *PositionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCleanupPositionsCommand(j.retention)
		if err != nil {
			j.logger.ErrorContext(ctx, "Position cleanup job misconfigured", "error", err)
			return
		}

		removed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Position cleanup job failed", "error", err)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Removed aged position records", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Position cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *PositionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Position cleanup job stopped")
}
