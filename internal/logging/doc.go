// Package logging assembles structured slog loggers and formatting helpers used
// across phonocover.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context helpers so a selection run can tag every log line with
// its run identifier. The package also provides a no-op logger for tests and
// library callers that do not care about diagnostics.
package logging
