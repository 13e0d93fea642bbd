// Package jobs provides scheduled background tasks for the restaurant system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the ordering workflow needs.
//
// # Available Jobs
//
// 1. CartJanitorJob - Drains carts that have been idle longer than the configured TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireStaleCartsHandler, cartTTL, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The janitor takes a six-field cron expression (seconds granularity). The
// default deployment runs it hourly; anything more frequent just burns a
// query, since staleness is measured in hours.
//
// # Error Handling
//
// - Janitor failures are logged and retried on the next tick; a failed run
//   never stops the schedule
// - Failed job starts will stop any already running jobs
package jobs
