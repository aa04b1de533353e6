// Package history is the per-identity record store.
//
// All operations are scoped to the active session: Add prepends to the
// identity's collection, Update merges a partial patch into one record, Delete
// and Get address records by ID, and List returns the collection in storage
// order. Every mutation re-serializes and stores the entire collection, a
// full-replace model (see the storage package) that keeps crash semantics
// simple at user-scale collection sizes.
//
// The first access for a never-before-seen identity seeds the collection with
// the fixture records from the records package, so new accounts always have
// explorable content.
package history
