package openedx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// TokenExpiryMargin is subtracted from a token's reported expiry when it is
// cached, so a token handed out near the boundary cannot expire mid-flight
// during the request it authenticates. The margin is applied once at storage
// time; freshness checks are then a pure comparison.
const TokenExpiryMargin = 5 * time.Second

// CachedToken memoizes a single OAuth 2.0 access token, refetching it from
// the token endpoint once the cached value reaches its margin-adjusted
// expiry. It holds at most one token at a time and is safe for concurrent
// use: concurrent callers observing a stale token converge on one fetch.
//
// Fetch errors propagate to the caller unchanged; the cache performs no
// retries. A failed refresh drops any previously cached token, so the next
// call starts from scratch rather than reusing a stale credential.
type CachedToken struct {
	creds      Credentials
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time // margin already subtracted

	now func() time.Time
}

// NewCachedToken creates a token cache for the given credentials. It returns
// a *ConfigurationError, before any network call, if the credential
// combination can never authenticate.
func NewCachedToken(creds Credentials, timeout Timeout) (*CachedToken, error) {
	creds = creds.withDefaults()
	if err := creds.validate(); err != nil {
		return nil, err
	}
	return &CachedToken{
		creds:      creds,
		httpClient: newTokenHTTPClient(timeout),
		now:        time.Now,
	}, nil
}

// Token returns the cached access token and its adjusted expiry, fetching a
// new one from the token endpoint if none is cached or the cached one is no
// longer fresh.
func (c *CachedToken) Token(ctx context.Context) (string, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, c.expiresAt, nil
	}

	token, expiresAt, err := GetOAuthAccessToken(ctx, c.httpClient, c.creds)
	if err != nil {
		// Drop-and-surface policy: a stale token is abandoned rather than
		// preserved for a later retry.
		c.token, c.expiresAt = "", time.Time{}
		return "", time.Time{}, err
	}

	c.token = token
	c.expiresAt = expiresAt.Add(-TokenExpiryMargin)
	return c.token, c.expiresAt, nil
}
