package sessionx

import "fmt"

// Predicate is a caller-injected payload check, run after the built-in
// gates. Returning an error rejects the token.
type Predicate func(payload map[string]any) error

// IssuerIs requires the token's iss claim to equal want.
func IssuerIs(want string) Predicate {
	return func(payload map[string]any) error {
		got, _ := payload["iss"].(string)
		if got != want {
			return fmt.Errorf("issuer %q, want %q", got, want)
		}
		return nil
	}
}

// AudienceContains requires the token's aud claim, whether a single string
// or an array, to include want.
func AudienceContains(want string) Predicate {
	return func(payload map[string]any) error {
		switch aud := payload["aud"].(type) {
		case string:
			if aud == want {
				return nil
			}
		case []any:
			for _, a := range aud {
				if s, ok := a.(string); ok && s == want {
					return nil
				}
			}
		}
		return fmt.Errorf("audience does not include %q", want)
	}
}

// RequireClaim requires a payload key to be present, whatever its value.
func RequireClaim(name string) Predicate {
	return func(payload map[string]any) error {
		if _, ok := payload[name]; !ok {
			return fmt.Errorf("required claim %q absent", name)
		}
		return nil
	}
}
