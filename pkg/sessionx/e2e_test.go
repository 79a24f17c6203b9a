package sessionx_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sessionkit/internal/sessiontest"
	"github.com/aussiebroadwan/sessionkit/pkg/claimx"
	"github.com/aussiebroadwan/sessionkit/pkg/sessionx"
	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// End-to-end walks of the full stack: a stub core publishes keys, a token
// comes in, and the SDK resolves it the way a request handler would.

func TestEndToEnd_ResolveUserFromToken(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core)

	now := time.Now()
	raw := kp.Mint(t, sessiontest.Payload("user-1", "handle-1", now.Add(time.Hour)))

	claims, err := v.Validate(context.Background(), raw, now)
	require.NoError(t, err)

	session := v.Session(claims)
	require.Equal(t, "user-1", session.UserID())
}

func TestEndToEnd_ExpiredTokenYieldsNoSession(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)
	v := newValidator(t, core)

	now := time.Now()
	raw := kp.Mint(t, sessiontest.Payload("user-1", "handle-1", now.Add(-10*time.Second)))

	claims, err := v.Validate(context.Background(), raw, now)
	require.ErrorIs(t, err, tokenx.ErrExpired)
	require.Nil(t, claims, "an expired token never produces a session handle")
}

func TestEndToEnd_StaleClaimRefetchesExactlyOnce(t *testing.T) {
	kp := sessiontest.NewKeypair(t, "key-1")
	core := newCore(t, kp, nil)

	now := time.Now()
	fetches := 0
	v := newValidator(t, core, func(cfg *sessionx.Config) {
		cfg.ClaimValidators = []claimx.Validator{
			claimx.BoolClaim{Name: "email-verified", Expected: true, MaxAge: time.Minute},
		}
		cfg.FetchClaim = func(context.Context, string, map[string]any) (any, error) {
			fetches++
			return true, nil
		}
	})

	// The token carries the claim fetched two minutes ago, past its
	// one-minute shelf life.
	payload := sessiontest.Payload("user-1", "handle-1", now.Add(time.Hour))
	claimx.Set(payload, "email-verified", true, now.Add(-2*time.Minute))
	raw := kp.Mint(t, payload)

	claims, err := v.Validate(context.Background(), raw, now)
	require.NoError(t, err)

	session := v.Session(claims)
	require.NoError(t, session.AssertClaims(context.Background(), now))
	require.Equal(t, 1, fetches, "one stale claim costs exactly one refetch")

	// Running again within the shelf life costs nothing.
	require.NoError(t, session.AssertClaims(context.Background(), now))
	require.Equal(t, 1, fetches)
}
