package tokenx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// VerifySignature checks an RS256 signature over signingInput against the
// candidate key set. When the token declared a kid, the matching entry is
// tried first; either way every candidate is tried before giving up, so
// tokens signed with an old-but-still-valid key keep verifying during a
// rotation overlap window.
//
// Pure function of its inputs: no network, no shared state.
func VerifySignature(signingInput, signature []byte, kid string, keys []KeyEntry) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: no candidate keys", ErrSignature)
	}

	method := jwt.SigningMethodRS256
	input := string(signingInput)

	// kid-matching entries first. Exhaustive fallback keeps us correct if
	// the core re-published a key under a different kid mid-rotation.
	if kid != "" {
		for _, k := range keys {
			if k.KID == kid {
				if method.Verify(input, signature, k.PublicKey) == nil {
					return nil
				}
			}
		}
	}

	for _, k := range keys {
		if kid != "" && k.KID == kid {
			continue // already tried above
		}
		if method.Verify(input, signature, k.PublicKey) == nil {
			return nil
		}
	}

	return ErrSignature
}
