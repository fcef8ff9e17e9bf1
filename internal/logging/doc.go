// Package logging assembles structured slog loggers shared across subreel
// components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so rendering and capture code tags
// log lines with session IDs, segment indexes, and clock positions using the
// same keys everywhere. A no-op logger is provided for tests.
package logging
