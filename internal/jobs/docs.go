// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second and publishes queued status-changed events to Kafka
// 2. RiderAssignmentJob - Runs every five seconds and assigns the oldest waiting parcel to a rider
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayOutboxHandler, autoAssignHandler, cfg.AutoAssignEnabled, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The assignment job ignores expected business errors (no waiting parcel, no rider in the zone)
// - The relay job logs publish failures and retries the same messages on the next tick
// - Failed job starts will stop any already running jobs
package jobs
