// Package jobs provides scheduled background tasks for the travel agency
// service, built on github.com/robfig/cron/v3 with second resolution.
//
// # Available Jobs
//
// OutboxRelayJob reads pending order events from the outbox and publishes
// them to the broker. Delivery is at least once; consumers must tolerate
// duplicates keyed by event id.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, "*/5 * * * * *", 100, "travelagency", registry, logger)
//	manager := jobs.NewJobManager(relay)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
