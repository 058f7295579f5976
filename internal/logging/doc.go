// Package logging constructs the slog loggers used across the tool.
//
// The console handler prints one line per record with the component attr
// pulled in front of the message and remaining attrs as key=value pairs; the
// JSON handler emits machine-readable records with stable field names.
package logging
