// Package sessionx is the SDK's front door: it validates session access
// tokens locally against the cached key set, hands out per-request session
// handles with read-your-writes claim mutation, and talks to the core only
// for the operations that genuinely need it (revocation, write-through data
// updates, re-minting).
//
// Validation is a fixed gate order, cheapest first: structural parse,
// version check, signature over the cached keys, expiry, then any
// caller-injected payload predicates. A token that fails an early gate never
// reaches a later one. The whole path is local; revocation checks against
// the core are a separate, explicit opt-in.
package sessionx
