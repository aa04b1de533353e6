// Package query derives filtered and sorted views over a record collection.
//
// Apply is a pure function: it never mutates its input and recomputes the
// view from the full collection on every call. There is no incremental index:
// collections are user-scale, and recomputing keeps the engine trivially
// consistent with the store.
package query
