package coreclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// VerifySession asks the core whether the session behind a handle is still
// live. Local token verification cannot observe revocation that hasn't yet
// been reflected by token expiry; this is the authoritative check callers
// opt into.
func (c *Client) VerifySession(ctx context.Context, handle string) (bool, error) {
	body := map[string]any{"sessionHandle": handle}
	resp, err := c.doJSON(ctx, http.MethodPost, "/recipe/session/verify", body)
	if err != nil {
		return false, err
	}

	var out statusResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Status == StatusOK, nil
}

// RevokeSession revokes a single session.
func (c *Client) RevokeSession(ctx context.Context, handle string) error {
	revoked, err := c.RevokeSessions(ctx, []string{handle})
	if err != nil {
		return err
	}
	if len(revoked) == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, handle)
	}
	return nil
}

// RevokeSessions revokes a batch of sessions and reports which handles the
// core actually revoked. Handles that were already gone simply don't appear
// in the result; revocation is idempotent.
func (c *Client) RevokeSessions(ctx context.Context, handles []string) ([]string, error) {
	body := map[string]any{"sessionHandles": handles}
	resp, err := c.doJSON(ctx, http.MethodPost, "/recipe/session/remove", body)
	if err != nil {
		return nil, err
	}

	var out revokeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.HandlesRevoked, nil
}

// UpdateSessionData writes a session's token payload through to the core
// immediately. Used by callers configured for write-through claim updates.
func (c *Client) UpdateSessionData(ctx context.Context, handle string, payload map[string]any) error {
	body := map[string]any{
		"sessionHandle": handle,
		"userDataInJWT": payload,
	}
	resp, err := c.doJSON(ctx, http.MethodPut, "/recipe/session/data", body)
	if err != nil {
		return err
	}

	var out statusResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return err
	}
	if out.Status != StatusOK {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, handle)
	}
	return nil
}

// RegenerateToken asks the core to mint a fresh access token for the
// session carrying an updated payload. This backs the deferred claim-update
// path: mutations accumulate on the session handle and are re-minted once
// when the response is produced.
func (c *Client) RegenerateToken(ctx context.Context, accessToken string, payload map[string]any) (string, error) {
	body := map[string]any{
		"accessToken":   accessToken,
		"userDataInJWT": payload,
	}
	resp, err := c.doJSON(ctx, http.MethodPost, "/recipe/session/regenerate", body)
	if err != nil {
		return "", err
	}

	var out regenerateResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	if out.Status != StatusOK {
		return "", ErrSessionNotFound
	}
	return out.AccessToken.Token, nil
}

// GetSession fetches the core's record for a handle.
func (c *Client) GetSession(ctx context.Context, handle string) (*SessionInfo, error) {
	path := "/recipe/session?sessionHandle=" + url.QueryEscape(handle)
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out verifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.Status != StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, handle)
	}
	return &out.Session, nil
}
