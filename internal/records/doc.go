// Package records defines the audio analysis record model shared by the
// session, history, pipeline, and query components.
//
// An AudioRecord captures one analyzed upload: file metadata, optional capture
// location, species analysis results, user tags and notes, plus the lifecycle
// status and per-stage completion flags the pipeline drives. A Collection is
// the ordered set of records belonging to one identity, newest first.
//
// JSON field names follow the stored history format; serialized collections
// must round-trip without loss, so every new field needs an explicit tag here.
package records
