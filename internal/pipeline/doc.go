// Package pipeline drives one submitted recording through the ordered
// processing stages: upload, spectrogram generation, analysis, and species
// identification.
//
// The engine is an explicit state machine. Validation happens before any state
// is entered, so a rejected submission leaves the machine untouched. Progress
// is a scalar in [0,100] advanced on a timer tick; quartile boundaries map to
// stages, and crossing a boundary latches the matching processingSteps flag
// for good. Reaching 100 assembles the finished record and hands it to the
// record store; the caller observes all of this asynchronously through
// Snapshot and Done.
//
// The timer stands in for real computation. Replacing a tick-driven stage with
// genuine work means signalling completion at the same quartile boundary, so
// the flag contract stays identical.
//
// One submission is in flight at a time; a Submit while one is running is
// rejected with ErrBusy. Cancel is idempotent and releases the staged copy of
// the upload without producing a record.
package pipeline
