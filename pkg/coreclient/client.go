package coreclient

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds each core request when the caller doesn't supply
// its own http.Client.
const DefaultTimeout = 10 * time.Second

// Client talks to the remote session core.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// APIKey, when set, is sent on every request. The core decides whether
	// to require it.
	APIKey string
}

// New creates a core client with the default request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}
