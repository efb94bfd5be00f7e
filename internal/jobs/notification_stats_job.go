package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/notifications"

	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule logs dispatcher counters once a minute.
const DefaultStatsSchedule = "@every 1m"

// StatsSource is satisfied by *notifications.Dispatcher.
type StatsSource interface {
	Stats() notifications.Stats
}

// NotificationStatsJob periodically logs dispatcher counters and pool occupancy.
type NotificationStatsJob struct {
	source   StatsSource
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationStatsJob accepts any robfig/cron spec; "" means DefaultStatsSchedule.
func NewNotificationStatsJob(source StatsSource, schedule string, logger *slog.Logger) *NotificationStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &NotificationStatsJob{
		source:   source,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "notification_stats_job"),
	}
}

// Start validates the schedule and starts the cron loop.
func (j *NotificationStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification stats job started", "schedule", j.schedule)
	return nil
}

// Run logs one snapshot. Start calls it on every tick.
func (j *NotificationStatsJob) Run() {
	stats := j.source.Stats()
	j.logger.InfoContext(context.Background(), "notification stats",
		"dispatched", stats.Dispatched,
		"scheduled", stats.Scheduled,
		"skipped", stats.Skipped,
		"dropped", stats.Dropped,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"attempts", stats.Attempts,
		"retries", stats.Retries,
		"workers", stats.Workers,
		"busy", stats.Busy,
		"queued", stats.Queued,
	)
}

// Stop waits for a running tick to finish.
func (j *NotificationStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification stats job stopped")
}
