package sessionx

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/claimx"
	"github.com/aussiebroadwan/sessionkit/pkg/coreclient"
	"github.com/aussiebroadwan/sessionkit/pkg/keycache"
	"github.com/aussiebroadwan/sessionkit/pkg/metricsx"
	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// Validator verifies access tokens and constructs session handles. One
// Validator serves the whole process; it is safe for concurrent use.
type Validator struct {
	cfg     Config
	core    *coreclient.Client
	keys    *keycache.Cache
	engine  *claimx.Engine
	logger  *slog.Logger
	metrics *metricsx.Metrics
}

// New builds a Validator from a Config, wiring up the core client and the
// key cache. No I/O happens until the first token is validated.
func New(cfg Config) (*Validator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	core := coreclient.New(cfg.CoreURL)
	core.APIKey = cfg.APIKey

	keys := keycache.New(core, keycache.Options{
		TTLDefault:      cfg.KeyTTL,
		FailureCooldown: cfg.KeyFailureCooldown,
		Logger:          logger,
		Metrics:         cfg.Metrics,
	})

	engine := &claimx.Engine{
		MaxRefetches: cfg.MaxRefetches,
		Logger:       logger,
		Metrics:      cfg.Metrics,
	}

	return &Validator{
		cfg:     cfg,
		core:    core,
		keys:    keys,
		engine:  engine,
		logger:  logger,
		metrics: cfg.Metrics,
	}, nil
}

// Core exposes the underlying core client for operations outside the
// session lifecycle, e.g. bulk revocation of a user's sessions.
func (v *Validator) Core() *coreclient.Client { return v.core }

// Validate runs the local gate order over a presented token: parse, version,
// signature, expiry, then any configured payload predicates. The first
// failing gate wins and later gates never run. Entirely local - the core is
// only contacted for key material, and then only when the cache needs it.
func (v *Validator) Validate(ctx context.Context, raw string, now time.Time) (*ValidatedClaims, error) {
	claims, err := v.validate(ctx, raw, now)
	if err != nil {
		v.metrics.ValidateFail()
		return nil, err
	}
	v.metrics.ValidateOK()
	return claims, nil
}

func (v *Validator) validate(ctx context.Context, raw string, now time.Time) (*ValidatedClaims, error) {
	token, err := tokenx.Parse(raw)
	if err != nil {
		return nil, err
	}

	if len(v.cfg.SupportedVersions) > 0 && !slices.Contains(v.cfg.SupportedVersions, token.Version) {
		return nil, fmt.Errorf("%w: version %d disabled by configuration",
			tokenx.ErrUnsupportedVersion, token.Version)
	}

	keys, err := v.keys.GetKeys(ctx)
	if err != nil {
		return nil, err
	}
	if sigErr := tokenx.VerifySignature(token.SigningInput(), token.Signature, token.KID, keys); sigErr != nil {
		// A rotation the cache hasn't observed yet looks exactly like a
		// forged token. One forced refresh settles which it is.
		fresh, refreshErr := v.keys.ForceRefresh(ctx)
		if refreshErr != nil {
			return nil, sigErr
		}
		if tokenx.VerifySignature(token.SigningInput(), token.Signature, token.KID, fresh) != nil {
			return nil, sigErr
		}
	}

	claims, err := claimsFromToken(raw, token)
	if err != nil {
		return nil, err
	}

	// Inclusive at the boundary: a token expiring at instant now is valid.
	if claims.Expiry.Add(v.cfg.ClockSkew).Before(now) {
		return nil, fmt.Errorf("%w: expired at %s", tokenx.ErrExpired, claims.Expiry.UTC().Format(time.RFC3339))
	}

	predicates := v.cfg.Predicates
	if v.cfg.Issuer != "" {
		predicates = append([]Predicate{IssuerIs(v.cfg.Issuer)}, predicates...)
	}
	for _, p := range predicates {
		if err := p(token.Payload); err != nil {
			return nil, fmt.Errorf("sessionx: payload rejected: %w", err)
		}
	}

	return claims, nil
}

// VerifyAntiCSRF compares a presented anti-CSRF value against the one baked
// into the token. Constant time, so the comparison leaks nothing about how
// close a guess was.
func (v *Validator) VerifyAntiCSRF(claims *ValidatedClaims, presented string) error {
	if claims.AntiCSRFToken == "" {
		return fmt.Errorf("%w: token carries no anti-CSRF value", ErrAntiCSRF)
	}
	if subtle.ConstantTimeCompare([]byte(claims.AntiCSRFToken), []byte(presented)) != 1 {
		return ErrAntiCSRF
	}
	return nil
}

// ValidateWithRevocationCheck validates locally and then asks the core
// whether the session is still live. Local validation cannot observe
// revocation before the token expires; callers pay one network round trip
// for the authoritative answer.
func (v *Validator) ValidateWithRevocationCheck(ctx context.Context, raw string, now time.Time) (*ValidatedClaims, error) {
	claims, err := v.Validate(ctx, raw, now)
	if err != nil {
		return nil, err
	}

	v.metrics.RemoteCheck()
	live, err := v.core.VerifySession(ctx, claims.SessionHandle)
	if err != nil {
		return nil, fmt.Errorf("sessionx: revocation check: %w", err)
	}
	if !live {
		return nil, fmt.Errorf("%w: %s", ErrSessionRevoked, claims.SessionHandle)
	}
	return claims, nil
}
