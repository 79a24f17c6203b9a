package sessionx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sessionkit/internal/sessiontest"
	"github.com/aussiebroadwan/sessionkit/pkg/sessionx"
	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// newCore serves the key-publication endpoint plus any extra handlers a
// test wires in, standing in for the remote authority.
func newCore(t *testing.T, kp *sessiontest.Keypair, extra map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/recipe/jwks", sessiontest.JWKSHandler(sessiontest.JWKSOf(kp), time.Hour))
	for pattern, handler := range extra {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newValidator(t *testing.T, core *httptest.Server, mutate ...func(*sessionx.Config)) *sessionx.Validator {
	t.Helper()
	cfg := sessionx.Config{CoreURL: core.URL}
	for _, m := range mutate {
		m(&cfg)
	}
	v, err := sessionx.New(cfg)
	require.NoError(t, err)
	return v
}

func TestValidateHappyPath(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core)

	now := time.Now()
	raw := kp.Mint(t, sessiontest.Payload("user-1", "handle-1", now.Add(time.Hour)))

	claims, err := v.Validate(context.Background(), raw, now)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user-1", claims.RecipeUserID, "rsub defaults to sub")
	require.Equal(t, "handle-1", claims.SessionHandle)
	require.Equal(t, "key-1", claims.KID)
	require.Equal(t, tokenx.VersionKeyed, claims.Version)
	require.Equal(t, raw, claims.Raw)
}

func TestValidateGateOrder(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	stranger := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core)

	now := time.Now()
	goodPayload := sessiontest.Payload("user-1", "handle-1", now.Add(time.Hour))

	badHeader := map[string]any{"alg": "HS256", "typ": "JWT", "version": "3", "kid": "key-1"}

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"garbage", "not-a-token", tokenx.ErrMalformed},
		{"two segments", "abc.def", tokenx.ErrMalformed},
		{"unrecognised header beats bad signature", stranger.MintHeader(t, badHeader, goodPayload), tokenx.ErrUnrecognizedHeader},
		{"wrong key", stranger.Mint(t, goodPayload), tokenx.ErrSignature},
		{"expired", kp.Mint(t, sessiontest.Payload("user-1", "handle-1", now.Add(-time.Minute))), tokenx.ErrExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), tt.raw, now)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateExpiryBoundary(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core)

	now := time.Unix(1_900_000_000, 0)

	atBoundary := kp.Mint(t, sessiontest.Payload("user-1", "h", now))
	_, err := v.Validate(context.Background(), atBoundary, now)
	require.NoError(t, err, "a token expiring exactly now is still valid")

	justPast := kp.Mint(t, sessiontest.Payload("user-1", "h", now.Add(-time.Second)))
	_, err = v.Validate(context.Background(), justPast, now)
	require.ErrorIs(t, err, tokenx.ErrExpired)
}

func TestValidateClockSkew(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core, func(cfg *sessionx.Config) {
		cfg.ClockSkew = 30 * time.Second
	})

	now := time.Unix(1_900_000_000, 0)
	raw := kp.Mint(t, sessiontest.Payload("user-1", "h", now.Add(-10*time.Second)))

	_, err := v.Validate(context.Background(), raw, now)
	require.NoError(t, err, "skew tolerates a recently expired token")
}

func TestValidateVersionNarrowing(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core, func(cfg *sessionx.Config) {
		cfg.SupportedVersions = []int{tokenx.VersionKeyed}
	})

	now := time.Now()
	static := kp.MintStatic(t, sessiontest.Payload("user-1", "h", now.Add(time.Hour)))

	_, err := v.Validate(context.Background(), static, now)
	require.ErrorIs(t, err, tokenx.ErrUnsupportedVersion)

	keyed := kp.Mint(t, sessiontest.Payload("user-1", "h", now.Add(time.Hour)))
	_, err = v.Validate(context.Background(), keyed, now)
	require.NoError(t, err)
}

func TestValidateIssuerAndPredicates(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core, func(cfg *sessionx.Config) {
		cfg.Issuer = "https://auth.example.com"
		cfg.Predicates = []sessionx.Predicate{sessionx.RequireClaim("tenant")}
	})

	now := time.Now()

	payload := sessiontest.Payload("user-1", "h", now.Add(time.Hour))
	payload["iss"] = "https://auth.example.com"
	payload["tenant"] = "acme"
	_, err := v.Validate(context.Background(), kp.Mint(t, payload), now)
	require.NoError(t, err)

	wrongIssuer := sessiontest.Payload("user-1", "h", now.Add(time.Hour))
	wrongIssuer["iss"] = "https://evil.example.com"
	wrongIssuer["tenant"] = "acme"
	_, err = v.Validate(context.Background(), kp.Mint(t, wrongIssuer), now)
	require.Error(t, err)
	require.Contains(t, err.Error(), "issuer")

	noTenant := sessiontest.Payload("user-1", "h", now.Add(time.Hour))
	noTenant["iss"] = "https://auth.example.com"
	_, err = v.Validate(context.Background(), kp.Mint(t, noTenant), now)
	require.Error(t, err)
	require.Contains(t, err.Error(), "tenant")
}

func TestAudienceContains(t *testing.T) {
	single := map[string]any{"aud": "api"}
	require.NoError(t, sessionx.AudienceContains("api")(single))
	require.Error(t, sessionx.AudienceContains("web")(single))

	multi := map[string]any{"aud": []any{"api", "web"}}
	require.NoError(t, sessionx.AudienceContains("web")(multi))
	require.Error(t, sessionx.AudienceContains("mobile")(multi))

	require.Error(t, sessionx.AudienceContains("api")(map[string]any{}))
}

func TestValidateRotationCatchUp(t *testing.T) {
	oldKey := sessiontest.NewKeypair(t, "key-old")
	newKey := sessiontest.NewKeypair(t, "key-new")

	// The core rotates between the first fetch and the token's arrival.
	current := sessiontest.JWKSOf(oldKey)
	mux := http.NewServeMux()
	mux.HandleFunc("/recipe/jwks", func(w http.ResponseWriter, r *http.Request) {
		sessiontest.JWKSHandler(current, time.Hour)(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	v := newValidator(t, server)
	now := time.Now()

	// Prime the cache with the old set.
	oldToken := oldKey.Mint(t, sessiontest.Payload("user-1", "h", now.Add(time.Hour)))
	_, err := v.Validate(context.Background(), oldToken, now)
	require.NoError(t, err)

	current = sessiontest.JWKSOf(oldKey, newKey)

	// A token under the new key fails against the cached set; the forced
	// refresh picks up the rotation without waiting out the TTL.
	newToken := newKey.Mint(t, sessiontest.Payload("user-2", "h2", now.Add(time.Hour)))
	claims, err := v.Validate(context.Background(), newToken, now)
	require.NoError(t, err)
	require.Equal(t, "user-2", claims.UserID)
}

func TestVerifyAntiCSRF(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core)

	now := time.Now()
	payload := sessiontest.Payload("user-1", "h", now.Add(time.Hour))
	payload["antiCsrfToken"] = "expected-value"

	claims, err := v.Validate(context.Background(), kp.Mint(t, payload), now)
	require.NoError(t, err)

	require.NoError(t, v.VerifyAntiCSRF(claims, "expected-value"))
	require.ErrorIs(t, v.VerifyAntiCSRF(claims, "wrong"), sessionx.ErrAntiCSRF)

	bare := sessiontest.Payload("user-1", "h", now.Add(time.Hour))
	bareClaims, err := v.Validate(context.Background(), kp.Mint(t, bare), now)
	require.NoError(t, err)
	require.ErrorIs(t, v.VerifyAntiCSRF(bareClaims, "anything"), sessionx.ErrAntiCSRF)
}

func TestValidateWithRevocationCheck(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, map[string]http.HandlerFunc{
		"/recipe/session/verify": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"UNAUTHORISED"}`))
		},
	})
	v := newValidator(t, core)

	now := time.Now()
	raw := kp.Mint(t, sessiontest.Payload("user-1", "revoked-handle", now.Add(time.Hour)))

	// Locally the token is fine; the core knows better.
	_, err := v.Validate(context.Background(), raw, now)
	require.NoError(t, err)

	_, err = v.ValidateWithRevocationCheck(context.Background(), raw, now)
	require.ErrorIs(t, err, sessionx.ErrSessionRevoked)
}

func TestConfigValidation(t *testing.T) {
	_, err := sessionx.New(sessionx.Config{})
	require.Error(t, err, "CoreURL is required")

	_, err = sessionx.New(sessionx.Config{CoreURL: "http://core", SupportedVersions: []int{7}})
	require.Error(t, err, "unknown versions are rejected at configuration time")
}
