// Package keycache holds the process-wide cache of the core's published
// verification keys. It is the only piece of mutable state shared across
// requests in the SDK, so it is built around one rule: the key set is
// swapped wholesale behind an atomic pointer, never mutated in place, and a
// stale set is always preferred over no set.
package keycache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/sessionkit/pkg/metricsx"
	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// DefaultTTL applies when the core's response carries no usable
// Cache-Control max-age hint.
const DefaultTTL = 10 * time.Minute

// DefaultFailureCooldown is the minimum spacing between refresh attempts
// while a stale set is being served, so a dead core isn't hit on every
// request.
const DefaultFailureCooldown = 5 * time.Second

// ErrNoKeys is returned only on cold start: a refresh failed and no prior
// fetch ever succeeded. Once one fetch has succeeded the cache never
// returns this again for the life of the process.
var ErrNoKeys = errors.New("keycache: no key set fetched yet")

// Fetcher retrieves the published key set from the core. maxAge reports the
// origin's Cache-Control max-age; hasMaxAge is false when the header was
// absent or unparsable.
type Fetcher interface {
	FetchKeys(ctx context.Context) (set tokenx.JWKS, maxAge time.Duration, hasMaxAge bool, err error)
}

// snapshot is an immutable key set plus its computed expiry. Readers either
// see the whole snapshot or the previous one, never a mix.
type snapshot struct {
	keys      []tokenx.KeyEntry
	expiresAt time.Time
}

// Options tune a Cache. Zero values pick the defaults above.
type Options struct {
	TTLDefault      time.Duration
	FailureCooldown time.Duration
	Logger          *slog.Logger
	Metrics         *metricsx.Metrics
}

// Cache lazily refreshes the key set on first use and whenever the cached
// set's expiry has passed. Safe for concurrent use.
type Cache struct {
	fetcher    Fetcher
	ttlDefault time.Duration
	logger     *slog.Logger
	metrics    *metricsx.Metrics

	// attempts gates refresh retries while stale; see refresh.
	attempts *rate.Limiter

	mu      sync.Mutex // serialises refreshes, not reads
	current atomic.Pointer[snapshot]
}

// New builds a Cache around a Fetcher. The cache performs no I/O until the
// first GetKeys call.
func New(fetcher Fetcher, opts Options) *Cache {
	ttl := opts.TTLDefault
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cooldown := opts.FailureCooldown
	if cooldown <= 0 {
		cooldown = DefaultFailureCooldown
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		fetcher:    fetcher,
		ttlDefault: ttl,
		logger:     logger,
		metrics:    opts.Metrics,
		attempts:   rate.NewLimiter(rate.Every(cooldown), 1),
	}
}

// GetKeys returns the current key set, refreshing from the core if the
// cached set has expired. On refresh failure the last-known-good set is
// returned however stale it is; the next call tries again.
func (c *Cache) GetKeys(ctx context.Context) ([]tokenx.KeyEntry, error) {
	if snap := c.current.Load(); snap != nil && time.Now().Before(snap.expiresAt) {
		return snap.keys, nil
	}
	return c.refresh(ctx)
}

// Expired reports whether the cached set is past its expiry (or absent).
// The validator uses this to decide whether an unknown-kid signature
// failure is worth one forced refresh.
func (c *Cache) Expired() bool {
	snap := c.current.Load()
	return snap == nil || !time.Now().Before(snap.expiresAt)
}

// ForceRefresh refreshes regardless of the cached expiry, subject to the
// same failure cooldown. Used after a signature failure that might be
// explained by a key rotation the cache hasn't observed yet.
func (c *Cache) ForceRefresh(ctx context.Context) ([]tokenx.KeyEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx, true)
}

func (c *Cache) refresh(ctx context.Context) ([]tokenx.KeyEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited on the lock.
	if snap := c.current.Load(); snap != nil && time.Now().Before(snap.expiresAt) {
		return snap.keys, nil
	}
	return c.refreshLocked(ctx, false)
}

// refreshLocked performs one fetch attempt. Callers hold c.mu.
func (c *Cache) refreshLocked(ctx context.Context, forced bool) ([]tokenx.KeyEntry, error) {
	stale := c.current.Load()

	// With a stale set in hand, respect the cooldown: availability beats
	// freshness, and retrying on every request would hammer a sick core.
	// Cold start always attempts - there is nothing to serve instead.
	if stale != nil && !c.attempts.Allow() {
		c.metrics.KeyServeStale()
		return stale.keys, nil
	}

	set, maxAge, hasMaxAge, err := c.fetcher.FetchKeys(ctx)
	if err != nil {
		return c.recoverStale(stale, err)
	}

	now := time.Now()
	keys, err := set.KeyEntries(now)
	if err != nil {
		return c.recoverStale(stale, err)
	}
	if len(keys) == 0 {
		return c.recoverStale(stale, errors.New("keycache: core published an empty key set"))
	}

	ttl := c.ttlDefault
	if hasMaxAge && maxAge >= 0 {
		ttl = maxAge
	}

	next := &snapshot{keys: keys, expiresAt: now.Add(ttl)}
	c.current.Store(next)
	c.metrics.KeyRefreshOK()
	c.logger.Debug("key set refreshed",
		"keys", len(keys),
		"ttl", ttl,
		"forced", forced,
	)
	return next.keys, nil
}

// recoverStale applies the failure policy: keep serving the old set if one
// exists, surface an error only when there has never been one.
func (c *Cache) recoverStale(stale *snapshot, cause error) ([]tokenx.KeyEntry, error) {
	c.metrics.KeyRefreshFail()
	if stale != nil {
		c.metrics.KeyServeStale()
		c.logger.Warn("key refresh failed, serving stale set", "error", cause)
		return stale.keys, nil
	}
	c.logger.Error("key refresh failed with empty cache", "error", cause)
	return nil, errors.Join(ErrNoKeys, cause)
}
