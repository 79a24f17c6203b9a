package sessionx

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/claimx"
)

// Session is a per-request handle over a validated token. Reads are pure;
// mutations are read-your-writes within this instance only and accumulate
// until the caller either finalises the handle for re-minting or writes
// through to the core. A Session is request-local and not meant to outlive
// the request that validated it.
type Session struct {
	validator *Validator
	claims    ValidatedClaims

	mu        sync.Mutex
	payload   map[string]any
	dirty     bool
	finalized bool
}

// Session wraps validated claims in a mutable handle. The payload is cloned
// so handle mutations never leak back into the ValidatedClaims.
func (v *Validator) Session(claims *ValidatedClaims) *Session {
	return &Session{
		validator: v,
		claims:    *claims,
		payload:   maps.Clone(claims.Payload),
	}
}

// UserID is the token's sub claim.
func (s *Session) UserID() string { return s.claims.UserID }

// RecipeUserID is the token's rsub claim, defaulting to sub.
func (s *Session) RecipeUserID() string { return s.claims.RecipeUserID }

// Handle identifies this session at the core.
func (s *Session) Handle() string { return s.claims.SessionHandle }

// Expiry is the token's expiry instant.
func (s *Session) Expiry() time.Time { return s.claims.Expiry }

// Dirty reports whether the payload has unflushed mutations.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ClaimValue reads a claim from the current payload, mutations included.
func (s *Session) ClaimValue(name string) claimx.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return claimx.Get(s.payload, name)
}

// Payload returns a copy of the current payload, mutations included.
func (s *Session) Payload() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.payload)
}

// MergeIntoPayload overlays entries onto the payload. A nil value deletes
// its key, mirroring how the core treats nulls in userDataInJWT.
func (s *Session) MergeIntoPayload(entries map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return ErrFinalized
	}
	for k, v := range entries {
		if v == nil {
			delete(s.payload, k)
			continue
		}
		s.payload[k] = v
	}
	s.dirty = true
	return nil
}

// SetClaim stores a claim value stamped at now.
func (s *Session) SetClaim(name string, value any, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return ErrFinalized
	}
	claimx.Set(s.payload, name, value, now)
	s.dirty = true
	return nil
}

// RemoveClaim deletes a claim from the payload.
func (s *Session) RemoveClaim(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return ErrFinalized
	}
	claimx.Remove(s.payload, name)
	s.dirty = true
	return nil
}

// AssertClaims runs claim validators over the current payload, using the
// configured validators when none are passed explicitly. Refetched values
// land in this session's payload and mark it dirty, so a later re-mint
// carries them.
func (s *Session) AssertClaims(ctx context.Context, now time.Time, validators ...claimx.Validator) error {
	if len(validators) == 0 {
		validators = s.validator.cfg.ClaimValidators
	}

	fetch := s.validator.cfg.FetchClaim
	var wrapped claimx.FetchFunc
	if fetch != nil {
		wrapped = func(ctx context.Context, claimName string, payload map[string]any) (any, error) {
			value, err := fetch(ctx, claimName, payload)
			if err == nil {
				s.dirty = true
			}
			return value, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return ErrFinalized
	}
	return s.validator.engine.Run(ctx, s.payload, validators, wrapped, now)
}

// Finalize hands back the accumulated payload and whether it differs from
// the token's original, exactly once. A dirty result is the caller's cue to
// re-mint the response token (see Regenerate). Further mutation of a
// finalised handle fails with ErrFinalized.
func (s *Session) Finalize() (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return nil, false, ErrFinalized
	}
	s.finalized = true
	return s.payload, s.dirty, nil
}

// Regenerate asks the core to mint a fresh token carrying the current
// payload, the deferred alternative to UpdateSessionData. The handle is
// clean afterwards.
func (s *Session) Regenerate(ctx context.Context) (string, error) {
	s.mu.Lock()
	payload := maps.Clone(s.payload)
	s.mu.Unlock()

	token, err := s.validator.core.RegenerateToken(ctx, s.claims.Raw, payload)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return token, nil
}

// UpdateSessionData writes the current payload through to the core
// immediately. The handle is clean afterwards.
func (s *Session) UpdateSessionData(ctx context.Context) error {
	s.mu.Lock()
	payload := maps.Clone(s.payload)
	s.mu.Unlock()

	if err := s.validator.core.UpdateSessionData(ctx, s.claims.SessionHandle, payload); err != nil {
		return err
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Revoke tells the core to revoke this session. The one network call every
// session lifecycle genuinely needs.
func (s *Session) Revoke(ctx context.Context) error {
	if err := s.validator.core.RevokeSession(ctx, s.claims.SessionHandle); err != nil {
		return err
	}
	s.validator.metrics.Revocation()
	return nil
}
