package coreclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/tokenx"
)

// FetchKeys retrieves the published verification key set. It implements
// keycache.Fetcher: the returned max-age is the origin's Cache-Control hint
// and hasMaxAge reports whether one was present and parseable.
func (c *Client) FetchKeys(ctx context.Context) (tokenx.JWKS, time.Duration, bool, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/recipe/jwks", nil)
	if err != nil {
		return tokenx.JWKS{}, 0, false, err
	}

	maxAge, hasMaxAge := parseMaxAge(resp.Header.Get("Cache-Control"))

	var set tokenx.JWKS
	if err := decodeJSON(resp, &set, http.StatusOK); err != nil {
		return tokenx.JWKS{}, 0, false, err
	}
	return set, maxAge, hasMaxAge, nil
}

// parseMaxAge extracts max-age from a Cache-Control header. Absent headers,
// unknown directives, and values that don't parse as a non-negative integer
// all report false, leaving the cache to apply its default TTL.
func parseMaxAge(header string) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		value, found := strings.CutPrefix(directive, "max-age=")
		if !found {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	return 0, false
}
