// Package api hosts workflow entry points shared by command-line surfaces.
// Each workflow accepts a request struct, opens the backing store for the
// duration of the call, and returns a plain result the caller can render.
package api
