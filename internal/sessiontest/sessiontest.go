// Package sessiontest provides shared helpers for minting signed session
// tokens and publishing key sets in tests. Production code never mints
// tokens - that is the core's job - so the signing side lives here.
package sessiontest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// Keypair is an RSA signing key under test control, standing in for one of
// the core's signing keys.
type Keypair struct {
	KID     string
	Private *rsa.PrivateKey
}

// NewKeypair generates a 2048-bit RSA keypair. 2048 keeps test runtime sane;
// production keys come from the core and are whatever size it minted.
func NewKeypair(t *testing.T, kid string) *Keypair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &Keypair{KID: kid, Private: key}
}

// JWK returns the public half in JWK form.
func (k *Keypair) JWK() tokenx.JWK {
	return tokenx.NewRSAJWK(k.KID, "sig", tokenx.AlgRS256, &k.Private.PublicKey)
}

// Entry returns the public half as a parsed key cache entry.
func (k *Keypair) Entry() tokenx.KeyEntry {
	return tokenx.KeyEntry{
		KID:       k.KID,
		PublicKey: &k.Private.PublicKey,
		FetchedAt: time.Now(),
	}
}

// JWKSOf bundles keypairs into a published key set.
func JWKSOf(pairs ...*Keypair) tokenx.JWKS {
	var set tokenx.JWKS
	for _, p := range pairs {
		set.Keys = append(set.Keys, p.JWK())
	}
	return set
}

// Payload builds a minimal session-token payload.
func Payload(sub, handle string, exp time.Time) map[string]any {
	return map[string]any{
		"sub":           sub,
		"sessionHandle": handle,
		"iat":           float64(time.Now().Unix()),
		"exp":           float64(exp.Unix()),
	}
}

// Mint signs a version-3 (keyed) token over the given payload.
func (k *Keypair) Mint(t *testing.T, payload map[string]any) string {
	t.Helper()
	header := map[string]any{
		"alg":     tokenx.AlgRS256,
		"typ":     tokenx.TypJWT,
		"version": "3",
		"kid":     k.KID,
	}
	return k.mint(t, header, payload)
}

// MintStatic signs a version-2 (legacy, kid-less) token.
func (k *Keypair) MintStatic(t *testing.T, payload map[string]any) string {
	t.Helper()
	header := map[string]any{
		"alg":     tokenx.AlgRS256,
		"typ":     tokenx.TypJWT,
		"version": "2",
	}
	return k.mint(t, header, payload)
}

// MintHeader signs a token with an arbitrary header, for tests that need
// unrecognized or broken headers with otherwise valid signatures.
func (k *Keypair) MintHeader(t *testing.T, header, payload map[string]any) string {
	t.Helper()
	return k.mint(t, header, payload)
}

func (k *Keypair) mint(t *testing.T, header, payload map[string]any) string {
	t.Helper()
	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)
	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON)

	sig, err := jwt.SigningMethodRS256.Sign(signingInput, k.Private)
	require.NoError(t, err)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)
}

// JWKSHandler serves a key set the way the core's key-publication endpoint
// does, with an optional Cache-Control max-age hint.
func JWKSHandler(set tokenx.JWKS, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxAge > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}
}
