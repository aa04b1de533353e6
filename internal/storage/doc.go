// Package storage provides the durable key-value store behind sessions and
// record collections.
//
// Values are JSON documents stored one row per key in SQLite: the active
// session lives under the "auth" key and each identity's collection under
// "audioHistory_{identityID}". Every write fully replaces the value for its
// key in a single transaction, so a crash mid-write never exposes a partially
// updated document. This full-replace model is deliberate: collections are
// user-scale, and correctness of the atomic replace matters more than
// incremental writes here.
//
// Open also takes a lock file next to the database to enforce the
// single-writer model; a second process opening the same data directory fails
// fast instead of interleaving writes.
package storage
