// Package services defines shared utilities consumed by the record lifecycle
// components and the CLI workflows.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with a
//     stable kind the presentation layer can branch on (unsupported media,
//     oversized upload, missing record, missing session, bad credentials).
//   - Context helpers that stamp record IDs and pipeline stage names for
//     logging.
//
// Use these helpers when wiring new operations so error classification and
// observability stay uniform across the engine.
package services
