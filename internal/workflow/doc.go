// Package workflow owns the three screener cycles and their schedule.
//
// The screening cycle discovers, scores, and notifies new tokens; the
// realtime cycle runs the monitors; the daily cycle assembles the report.
// The Manager runs all three on their schedules and keeps the daemon alive
// through cycle failures.
package workflow
