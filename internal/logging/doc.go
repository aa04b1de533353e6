// Package logging centralizes slog-based logging for EcoAcústica.
//
// It constructs loggers from configuration (console or JSON output, optional
// log file alongside stdout), exposes typed attribute helpers so call sites
// stay terse, and provides a Nop logger for tests and optional collaborators.
package logging
