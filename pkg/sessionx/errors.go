package sessionx

import "errors"

var (
	// ErrAntiCSRF means the presented anti-CSRF value did not match the one
	// baked into the token, or the token carries none.
	ErrAntiCSRF = errors.New("sessionx: anti-CSRF token mismatch")

	// ErrSessionRevoked means the core no longer recognises the session
	// behind an otherwise valid token.
	ErrSessionRevoked = errors.New("sessionx: session revoked")

	// ErrNotInitialized means Instance was called before Init.
	ErrNotInitialized = errors.New("sessionx: not initialised, call Init first")

	// ErrAlreadyInitialized means Init was called twice.
	ErrAlreadyInitialized = errors.New("sessionx: already initialised")

	// ErrFinalized means a session handle was mutated after Finalize.
	ErrFinalized = errors.New("sessionx: session already finalised")
)
