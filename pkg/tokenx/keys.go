package tokenx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"crypto/rsa"
)

// JWK represents a public key in JSON Web Key format (RFC 7517). Session
// tokens are RS256-only, so only the RSA fields matter here.
type JWK struct {
	Kty string `json:"kty"`           // key type: "RSA"
	Use string `json:"use,omitempty"` // what we use it for: "sig"
	Alg string `json:"alg,omitempty"` // algorithm: "RS256"
	Kid string `json:"kid,omitempty"` // key ID

	N string `json:"n,omitempty"` // modulus (base64url)
	E string `json:"e,omitempty"` // exponent (base64url)
}

// JWKS is a JSON Web Key Set (RFC 7517) as published by the core.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// KeyEntry is one verification key from the core's published set. Several
// entries can be valid at once during a rotation overlap window.
type KeyEntry struct {
	KID       string
	PublicKey *rsa.PublicKey

	// FetchedAt is when this entry was loaded from the core. Informational,
	// used for logging and staleness diagnostics only.
	FetchedAt time.Time
}

// NewRSAJWK builds a JWK for an RSA public key.
func NewRSAJWK(kid, use, alg string, pub *rsa.PublicKey) JWK {
	return JWK{
		Kty: "RSA",
		Use: use,
		Alg: alg,
		Kid: kid,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// KeyEntries parses every key in the set into usable crypto keys. A single
// bad key fails the whole set - callers replace key sets wholesale, never
// patch them, so a partially parsed set must never escape.
func (s JWKS) KeyEntries(now time.Time) ([]KeyEntry, error) {
	entries := make([]KeyEntry, 0, len(s.Keys))
	for _, j := range s.Keys {
		pub, err := parseRSAJWK(j)
		if err != nil {
			return nil, err
		}
		entries = append(entries, KeyEntry{
			KID:       j.Kid,
			PublicKey: pub,
			FetchedAt: now,
		})
	}
	return entries, nil
}

// parseRSAJWK converts an RSA JWK into an *rsa.PublicKey.
func parseRSAJWK(j JWK) (*rsa.PublicKey, error) {
	if j.Kty != "RSA" {
		return nil, errors.New("tokenx: unsupported kty " + j.Kty)
	}
	nb, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, fmt.Errorf("tokenx: decode modulus for kid %q: %w", j.Kid, err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, fmt.Errorf("tokenx: decode exponent for kid %q: %w", j.Kid, err)
	}
	// Real-world RSA public exponents fit in 4 bytes; anything longer would
	// truncate in the int conversion below.
	if len(eb) > 4 {
		return nil, fmt.Errorf("tokenx: exponent too large for kid %q", j.Kid)
	}
	n := new(big.Int).SetBytes(nb)
	e := new(big.Int).SetBytes(eb).Int64()
	if n.Sign() <= 0 || e <= 0 {
		return nil, fmt.Errorf("tokenx: invalid RSA parameters for kid %q", j.Kid)
	}
	return &rsa.PublicKey{N: n, E: int(e)}, nil
}

// MarshalJSON ensures stable encoding for JWKS output.
func (j JWK) MarshalJSON() ([]byte, error) {
	type alias JWK
	return json.Marshal(alias(j))
}
