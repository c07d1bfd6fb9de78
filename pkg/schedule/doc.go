// Package schedule provides cancellable repeating tasks backed by robfig/cron,
// plus a manual clock for deterministic tests.
package schedule
