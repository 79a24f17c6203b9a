package coreclient

import "time"

// Core status strings.
const (
	StatusOK           = "OK"
	StatusUnauthorised = "UNAUTHORISED"
)

// SessionInfo is the core's record of one session.
type SessionInfo struct {
	Handle       string         `json:"sessionHandle"`
	UserID       string         `json:"userId"`
	RecipeUserID string         `json:"recipeUserId"`
	Payload      map[string]any `json:"userDataInJWT"`
	ExpiryMillis int64          `json:"expiry"`
	CreatedAt    int64          `json:"timeCreated"`
}

// Expiry returns the session record's expiry as a time.Time.
func (s SessionInfo) Expiry() time.Time {
	return time.UnixMilli(s.ExpiryMillis)
}

// statusResponse is the envelope the core wraps most responses in.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type verifyResponse struct {
	Status  string      `json:"status"`
	Session SessionInfo `json:"session"`
}

type revokeResponse struct {
	Status         string   `json:"status"`
	HandlesRevoked []string `json:"sessionHandlesRevoked"`
}

type regenerateResponse struct {
	Status      string `json:"status"`
	AccessToken struct {
		Token  string `json:"token"`
		Expiry int64  `json:"expiry"`
	} `json:"accessToken"`
}
