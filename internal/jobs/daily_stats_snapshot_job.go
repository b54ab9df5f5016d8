package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodhub/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DailyStatsSnapshotJob periodically recomputes the current day's order
// counters and revenue and writes the snapshot to the cache, so dashboard
// reads stay cheap while the day is still accumulating orders.
type DailyStatsSnapshotJob struct {
	handler queries.GetDailyStatsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDailyStatsSnapshotJob creates the snapshot job. The refresh runs once
// a minute, which keeps the snapshot at most a minute stale.
func NewDailyStatsSnapshotJob(handler queries.GetDailyStatsQueryHandler, logger *slog.Logger) *DailyStatsSnapshotJob {
	return &DailyStatsSnapshotJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "daily_stats_snapshot_job"),
	}
}

// Start begins the snapshot refresh on a per-minute schedule.
func (j *DailyStatsSnapshotJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		day := time.Now().UTC().Truncate(24 * time.Hour)

		if err := j.handler.Refresh(ctx, day); err != nil {
			j.logger.ErrorContext(ctx, "Daily stats snapshot refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Daily stats snapshot job started (running every minute)")
	return nil
}

// Stop stops the snapshot job.
func (j *DailyStatsSnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Daily stats snapshot job stopped")
}
