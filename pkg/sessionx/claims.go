package sessionx

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// ValidatedClaims is the decoded, signature-checked content of an access
// token. Everything here came out of a payload whose signature verified;
// nothing has been checked against the core.
type ValidatedClaims struct {
	// Raw is the token exactly as presented, kept for re-minting.
	Raw string

	// UserID is the sub claim.
	UserID string

	// RecipeUserID is the rsub claim, falling back to sub when absent.
	RecipeUserID string

	// SessionHandle identifies the session at the core.
	SessionHandle string

	Expiry   time.Time
	IssuedAt time.Time
	Issuer   string

	// AntiCSRFToken is the anti-CSRF value baked into the token, empty when
	// the session was created without one.
	AntiCSRFToken string

	// KID and Version describe which key and token format signed this.
	KID     string
	Version int

	// Payload is the full decoded payload, application claims included.
	Payload map[string]any
}

// claimsFromToken lifts the well-known claims out of a parsed payload.
// A payload missing its required claims is malformed even though the
// signature verified - the core never mints such a token.
func claimsFromToken(raw string, token *tokenx.ParsedToken) (*ValidatedClaims, error) {
	sub, ok := token.Payload["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: payload missing sub", tokenx.ErrMalformed)
	}
	handle, ok := token.Payload["sessionHandle"].(string)
	if !ok || handle == "" {
		return nil, fmt.Errorf("%w: payload missing sessionHandle", tokenx.ErrMalformed)
	}
	exp, ok := token.Payload["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: payload missing exp", tokenx.ErrMalformed)
	}

	claims := &ValidatedClaims{
		Raw:           raw,
		UserID:        sub,
		RecipeUserID:  sub,
		SessionHandle: handle,
		Expiry:        time.Unix(int64(exp), 0),
		KID:           token.KID,
		Version:       token.Version,
		Payload:       token.Payload,
	}
	if rsub, ok := token.Payload["rsub"].(string); ok && rsub != "" {
		claims.RecipeUserID = rsub
	}
	if iat, ok := token.Payload["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if iss, ok := token.Payload["iss"].(string); ok {
		claims.Issuer = iss
	}
	if csrf, ok := token.Payload["antiCsrfToken"].(string); ok {
		claims.AntiCSRFToken = csrf
	}
	return claims, nil
}
