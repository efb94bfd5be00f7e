// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationStatsJob logs the notification dispatcher counters (dispatched,
// succeeded, failed, retries, dropped) and worker pool occupancy on a
// schedule, "@every 1m" by default. Delivery failures are only ever logged,
// so this is the periodic summary operators read.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatcher, "@every 1m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A schedule that robfig/cron cannot parse makes StartAll fail.
package jobs
