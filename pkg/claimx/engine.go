package claimx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/metricsx"
)

// DefaultMaxRefetches bounds how many times a single validator may ask for a
// fresh value in one run. One is enough: if a just-fetched value is still
// unacceptable, fetching again won't change the answer.
const DefaultMaxRefetches = 1

// Engine runs a set of validators over a payload in order, fail-closed.
type Engine struct {
	// MaxRefetches caps refetches per validator per run. Zero means
	// DefaultMaxRefetches.
	MaxRefetches int

	// Logger receives refetch and rejection events. Nil means silent.
	Logger *slog.Logger

	// Metrics receives refetch and rejection counts. Nil is fine.
	Metrics *metricsx.Metrics
}

// Run judges the payload against each validator in order. The first invalid
// verdict stops the run and returns a *ValidationError; later validators are
// not consulted. Refetch verdicts invoke fetch (at most MaxRefetches times
// per validator), store the fresh value into the payload stamped at now, and
// re-judge. A validator still asking for a refetch after the bound is treated
// as invalid.
//
// now is sampled once by the caller and used for every staleness judgement
// and every stored timestamp in this run, so a slow fetch cannot make
// sibling claims disagree about the current instant.
func (e *Engine) Run(ctx context.Context, payload map[string]any, validators []Validator, fetch FetchFunc, now time.Time) error {
	maxRefetches := e.MaxRefetches
	if maxRefetches <= 0 {
		maxRefetches = DefaultMaxRefetches
	}

	for _, validator := range validators {
		name := validator.ClaimName()
		result := validator.Validate(now, Get(payload, name))

		refetches := 0
		for result.Verdict == VerdictRefetch {
			if fetch == nil {
				result = Invalid("value absent or stale and no refetch hook configured")
				break
			}
			if refetches >= maxRefetches {
				result = Invalid("still stale after %d refetch(es)", refetches)
				break
			}
			refetches++
			e.Metrics.ClaimRefetch()
			if e.Logger != nil {
				e.Logger.DebugContext(ctx, "refetching claim value", "claim", name)
			}

			value, err := fetch(ctx, name, payload)
			if err != nil {
				// Fail closed: an unverifiable claim is a rejected claim.
				e.Metrics.ClaimRejection()
				return &ValidationError{
					Claim:  name,
					Reason: fmt.Sprintf("refetch failed: %v", err),
				}
			}
			Set(payload, name, value, now)
			result = validator.Validate(now, Get(payload, name))
		}

		if result.Verdict == VerdictInvalid {
			e.Metrics.ClaimRejection()
			if e.Logger != nil {
				e.Logger.WarnContext(ctx, "claim rejected session",
					"claim", name,
					"reason", result.Reason,
				)
			}
			return &ValidationError{Claim: name, Reason: result.Reason}
		}
	}
	return nil
}
