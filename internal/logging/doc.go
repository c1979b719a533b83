// Package logging assembles structured slog loggers and formatting helpers used
// across exifstrip.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code automatically
// tags log lines with the run ID, the file being processed, and the stage. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// The interactive console belongs to the report package; logs default to
// warnings on stderr so they only surface when something needs attention.
package logging
