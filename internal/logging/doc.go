// Package logging builds the slog loggers used across solscreener.
//
// Two output formats are supported: a compact console handler for
// interactive use and a JSON handler for hosted deployments. Log output is
// fanned out to stdout and a file under the configured log directory.
// Attr helpers and standardized field names keep cycle, session, and token
// identifiers consistent across packages.
package logging
