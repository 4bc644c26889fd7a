// Package store persists screener state in SQLite: which mints were
// already notified (for dedup and score-change detection) and the scan
// history that feeds the daily report.
package store
