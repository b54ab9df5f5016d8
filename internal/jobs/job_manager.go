// Package jobs provides the scheduled background tasks of the service,
// built on github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"foodhub/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dailyStatsSnapshotJob *DailyStatsSnapshotJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	dailyStatsHandler queries.GetDailyStatsQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dailyStatsSnapshotJob: NewDailyStatsSnapshotJob(dailyStatsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dailyStatsSnapshotJob.Start(); err != nil {
		return fmt.Errorf("failed to start daily stats snapshot job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dailyStatsSnapshotJob.Stop()
}
