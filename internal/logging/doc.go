// Package logging assembles structured slog loggers and formatting helpers used
// across rpt commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so report generation can tag log
// lines with the run identifier of the report being produced. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
