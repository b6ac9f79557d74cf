// Package logging assembles the structured slog loggers used across podtag.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so command code can tag log lines
// with album IDs and correlation IDs. A no-op logger is provided for tests
// and wiring code that cannot fail.
package logging
