// Package logs reads back the application log file for the CLI.
//
// It tails with bounded memory, supports "last N lines" requests, and powers
// follow mode for `ecoacustica logs --follow`. Callers supply context
// deadlines so polling stops cleanly when the CLI exits.
package logs
