package sessionx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/claimx"
	"github.com/aussiebroadwan/sessionkit/pkg/metricsx"
	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// Config configures a Validator. CoreURL is the only required field;
// everything else has a working default.
type Config struct {
	// CoreURL is the base URL of the core authority, e.g.
	// "http://localhost:3567".
	CoreURL string

	// APIKey, when set, is sent to the core on every request.
	APIKey string

	// Issuer, when set, requires the token's iss claim to match.
	Issuer string

	// ClockSkew widens the expiry check to tolerate clock drift between the
	// core and this process. Zero means exact: a token expiring at instant
	// now is still valid, one second earlier is not.
	ClockSkew time.Duration

	// SupportedVersions narrows which token versions this deployment
	// accepts. Empty means every recognised version.
	SupportedVersions []int

	// Predicates are extra payload checks run after the built-in gates.
	Predicates []Predicate

	// ClaimValidators run against a session's payload via AssertClaims.
	ClaimValidators []claimx.Validator

	// FetchClaim refreshes a stale or absent claim value during claim
	// validation. Nil means stale claims fail closed.
	FetchClaim claimx.FetchFunc

	// MaxRefetches caps claim refetches per validator per run. Zero means
	// the claimx default of one.
	MaxRefetches int

	// KeyTTL overrides the fallback key cache TTL used when the core sends
	// no Cache-Control hint.
	KeyTTL time.Duration

	// KeyFailureCooldown spaces out key refresh retries while serving a
	// stale set.
	KeyFailureCooldown time.Duration

	Logger  *slog.Logger
	Metrics *metricsx.Metrics
}

func (c *Config) validate() error {
	if c.CoreURL == "" {
		return fmt.Errorf("sessionx: config requires a CoreURL")
	}
	for _, v := range c.SupportedVersions {
		if v != tokenx.VersionStatic && v != tokenx.VersionKeyed {
			return fmt.Errorf("sessionx: config names unrecognised token version %d", v)
		}
	}
	return nil
}
