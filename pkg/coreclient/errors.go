package coreclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionNotFound means the core has no live session for the handle -
// it was revoked or expired server-side.
var ErrSessionNotFound = errors.New("coreclient: session not found")

// CoreError is a non-2xx response from the core, preserved with enough
// structure that operators can tell failure classes apart in logs.
type CoreError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Code is the machine-readable status from the body, e.g.
	// "UNAUTHORISED". Falls back to the HTTP status text.
	Code string `json:"status"`

	// Message is the human-readable explanation, when the core sent one.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("coreclient: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("coreclient: %s", e.Code)
}

// parseErrorResponse converts a non-2xx body into a *CoreError. The body is
// best-effort: anything undecodable still yields a usable error carrying
// the HTTP status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	coreErr := &CoreError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, coreErr); err != nil || coreErr.Code == "" {
		coreErr.Code = http.StatusText(resp.StatusCode)
		coreErr.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return coreErr
}
