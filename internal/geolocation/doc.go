// Package geolocation enriches submitted coordinates with address, ecosystem,
// and weather details.
//
// Enrichment is best-effort and opaque to the record lifecycle: the engine
// only requires a coordinate pair, and any provider failure simply leaves the
// optional fields empty. Resolved locations are cached with a TTL so repeated
// lookups for the same spot skip the provider.
package geolocation
