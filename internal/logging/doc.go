// Package logging builds slog loggers with the console and JSON output
// formats used across absweep.
package logging
