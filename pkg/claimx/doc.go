// Package claimx evaluates pluggable claim validators against a session's
// payload. Each validator judges one named claim and returns valid, invalid
// with a reason, or needs-refetch; the engine aggregates verdicts, fails
// closed on the first invalid, and bounds refetches so a perpetually-stale
// claim can never loop a request forever.
//
// Claim values live in the payload as {"v": <value>, "t": <unix millis>} so
// validators can compute staleness without extra bookkeeping. Refetching is
// always an explicit hook the caller supplies - validators themselves are
// deterministic, side-effect-free functions of the claim value.
package claimx
