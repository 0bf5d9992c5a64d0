// Package retention enforces the audit trail's retention policy.
//
// The Pruner deletes records past the configured age and trims the trail
// to a maximum record count. The Scheduler runs it on a cron expression,
// typically nightly.
package retention
