// Package jobs provides scheduled background tasks for the driver session
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// The single job here is the location reporter: one instance per driver
// session, armed while the driver is online and disarmed when they go
// offline.
//
// # Usage
//
//	reporter := jobs.NewLocationReporterJob(driverID, provider, handler, 30, logger)
//
//	// Driver goes online
//	if err := reporter.Arm(); err != nil {
//		return err
//	}
//
//	// Driver goes offline
//	reporter.Disarm()
//
// # Scheduling
//
// The reporter uses a seconds-granularity cron expression ("*/30 * * * * *"
// for the default 30 second period). Disarm stops the schedule before the
// next tick; a tick already in flight may still land, but no further ticks
// fire until the reporter is armed again.
package jobs
