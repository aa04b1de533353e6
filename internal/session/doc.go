// Package session manages the authenticated identity that scopes all record
// operations.
//
// Credential verification is delegated to a Verifier so the engine stays
// decoupled from how accounts are actually validated; the bundled
// StaticVerifier carries the fixed demo accounts. The Store persists the
// active session under the "auth" storage key, restores it at startup, and
// clears it on logout without touching any identity's stored collection.
package session
