// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the taxi service.
//
// # Available Jobs
//
// 1. BroadcastRetryJob - Runs every five seconds to re-announce orders stuck in the New status
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(orderUoWFactory, broadcastOrderHandler, logger)
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
// The retry job uses the cron expression "*/5 * * * * *", running every five
// seconds. Announcement retry tolerates this delay: the order stays visible
// to the client as accepted while the drivers chat catches up.
//
// # Error Handling
//
// - The retry job ignores InvalidStateError (the order moved on since the listing)
// - Gateway failures are logged and retried on the next tick
package jobs
