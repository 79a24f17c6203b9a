package claimx

import (
	"reflect"
	"time"
)

// BoolClaim validates a boolean claim like "email-verified" or "mfa-passed".
type BoolClaim struct {
	// Name is the payload key.
	Name string

	// Expected is the value the claim must hold, usually true.
	Expected bool

	// MaxAge bounds how old the stored value may be before a refetch is
	// required. Zero means any age is acceptable.
	MaxAge time.Duration
}

func (c BoolClaim) ClaimName() string { return c.Name }

func (c BoolClaim) Validate(now time.Time, value Value) Result {
	if value.Stale(now, c.MaxAge) {
		return Refetch()
	}
	got, ok := value.Value.(bool)
	if !ok {
		return Invalid("expected a boolean, got %T", value.Value)
	}
	if got != c.Expected {
		return Invalid("expected %v, got %v", c.Expected, got)
	}
	return Valid()
}

// ListClaimMode selects how a ListClaim judges its elements.
type ListClaimMode int

const (
	// ListIncludes requires every element of Elements to be present.
	ListIncludes ListClaimMode = iota

	// ListExcludes requires every element of Elements to be absent.
	ListExcludes
)

// ListClaim validates a claim whose value is an array of primitives, e.g. a
// permission or role list.
type ListClaim struct {
	// Name is the payload key.
	Name string

	// Mode selects include or exclude semantics.
	Mode ListClaimMode

	// Elements are the values to require present or absent.
	Elements []any

	// MaxAge bounds the stored value's age. Zero means any age.
	MaxAge time.Duration
}

func (c ListClaim) ClaimName() string { return c.Name }

func (c ListClaim) Validate(now time.Time, value Value) Result {
	if value.Stale(now, c.MaxAge) {
		return Refetch()
	}
	list, ok := value.Value.([]any)
	if !ok {
		return Invalid("expected an array, got %T", value.Value)
	}

	for _, want := range c.Elements {
		found := false
		for _, got := range list {
			if reflect.DeepEqual(want, got) {
				found = true
				break
			}
		}
		switch c.Mode {
		case ListIncludes:
			if !found {
				return Invalid("missing element %v", want)
			}
		case ListExcludes:
			if found {
				return Invalid("forbidden element %v present", want)
			}
		}
	}
	return Valid()
}
