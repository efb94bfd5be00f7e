package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationStatsJob *NotificationStatsJob
}

func NewJobManager(stats StatsSource, statsSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationStatsJob: NewNotificationStatsJob(stats, statsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification stats job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationStatsJob.Stop()
}
