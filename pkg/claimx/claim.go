package claimx

import "time"

// Value is one claim as read out of a session payload.
type Value struct {
	// Value is the claim's payload value. Only meaningful when Present.
	Value any

	// FetchedAt is when the value was last fetched from its source.
	FetchedAt time.Time

	// Present reports whether the claim exists in the payload at all.
	Present bool
}

// Stale reports whether the value is older than maxAge at instant now.
// A zero maxAge means the value never goes stale. Absent values are always
// stale - there is nothing to trust.
func (v Value) Stale(now time.Time, maxAge time.Duration) bool {
	if !v.Present {
		return true
	}
	if maxAge <= 0 {
		return false
	}
	return now.Sub(v.FetchedAt) > maxAge
}

// Get reads a claim out of a payload. Anything that isn't the expected
// {"v": ..., "t": ...} shape reads as absent.
func Get(payload map[string]any, name string) Value {
	raw, ok := payload[name].(map[string]any)
	if !ok {
		return Value{}
	}
	value, hasValue := raw["v"]
	if !hasValue {
		return Value{}
	}
	millis, _ := raw["t"].(float64)
	return Value{
		Value:     value,
		FetchedAt: time.UnixMilli(int64(millis)),
		Present:   true,
	}
}

// Set writes a claim into a payload, stamping it as fetched at now.
func Set(payload map[string]any, name string, value any, now time.Time) {
	payload[name] = map[string]any{
		"v": value,
		"t": float64(now.UnixMilli()),
	}
}

// Remove deletes a claim from a payload.
func Remove(payload map[string]any, name string) {
	delete(payload, name)
}
