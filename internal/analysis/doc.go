// Package analysis supplies species identification results for completed
// pipeline runs.
//
// Real inference is out of scope here; the catalog identifier stands in for an
// ML backend, returning deterministic detections from a fixed species list.
// The Identifier interface is the seam where a genuine model gets wired in.
package analysis
