package claimx

import (
	"context"
	"fmt"
	"time"
)

// Verdict is a single validator's judgement of a claim.
type Verdict int

const (
	// VerdictValid accepts the claim as-is.
	VerdictValid Verdict = iota

	// VerdictInvalid rejects the whole session, with a reason.
	VerdictInvalid

	// VerdictRefetch means the claim's value is absent or stale and must be
	// refreshed from its source before a final judgement.
	VerdictRefetch
)

// Result pairs a verdict with a machine-readable reason for rejections.
type Result struct {
	Verdict Verdict
	Reason  string
}

// Valid accepts the claim.
func Valid() Result { return Result{Verdict: VerdictValid} }

// Invalid rejects the session with a reason.
func Invalid(format string, args ...any) Result {
	return Result{Verdict: VerdictInvalid, Reason: fmt.Sprintf(format, args...)}
}

// Refetch requests a fresh value before re-judging.
func Refetch() Result { return Result{Verdict: VerdictRefetch} }

// Validator judges one named claim. Implementations must be deterministic
// for a given claim value and must not touch other claims or perform I/O -
// refetching is the engine's job, through the caller's hook.
type Validator interface {
	// ClaimName is the payload key this validator judges.
	ClaimName() string

	// Validate judges the claim's current value at instant now.
	Validate(now time.Time, value Value) Result
}

// FetchFunc retrieves a fresh value for a claim from external logic, e.g.
// "fetch the current permission set from the core". The engine stores the
// returned value into the payload before re-running the validator.
type FetchFunc func(ctx context.Context, claimName string, payload map[string]any) (any, error)

// ValidationError is the engine's fail-closed outcome: the named claim
// rejected the session. Distinct from token-structural failures so callers
// can map "credential fine, not allowed" separately.
type ValidationError struct {
	Claim  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("claimx: claim %q invalid: %s", e.Claim, e.Reason)
}
