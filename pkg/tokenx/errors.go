package tokenx

import "errors"

var (
	// ErrMalformed means the token is structurally broken: wrong segment
	// count, bad base64url, or header/payload that isn't a JSON object.
	ErrMalformed = errors.New("tokenx: malformed token")

	// ErrUnrecognizedHeader means the token decoded fine but its header
	// doesn't match any of the accepted algorithm/version patterns. This is
	// the cheap filter that runs before any cryptographic work, so tokens
	// from unrelated issuers are rejected early.
	ErrUnrecognizedHeader = errors.New("tokenx: unrecognized token header")

	// ErrUnsupportedVersion means the header matched but the caller's
	// validator is not configured to accept that token format version.
	ErrUnsupportedVersion = errors.New("tokenx: unsupported token version")

	// ErrSignature means no currently-valid key verified the signature.
	ErrSignature = errors.New("tokenx: invalid signature")

	// ErrExpired means the payload exp claim is in the past relative to the
	// validation instant.
	ErrExpired = errors.New("tokenx: token expired")
)
