// Package logging constructs the slog loggers used across the build tool.
// It provides a compact console handler that prefixes records with the
// active pipeline step and a JSON handler for machine consumption.
package logging
