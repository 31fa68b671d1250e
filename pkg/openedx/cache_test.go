package openedx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move the cache's idea of "now" without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// tokenServer serves sequential tokens ("cred1", "cred2", ...) with the
// given lifetime and counts fetches.
func tokenServer(t *testing.T, expiresIn int) (*httptest.Server, *int) {
	t.Helper()

	fetches := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		(*fetches)++
		_, _ = fmt.Fprintf(w, `{"access_token":"cred%d","expires_in":%d}`, *fetches, expiresIn)
	}))
	t.Cleanup(srv.Close)
	return srv, fetches
}

func newTestCache(t *testing.T, url string, clock *fakeClock) *CachedToken {
	t.Helper()

	cache, err := NewCachedToken(Credentials{
		BaseURL:      url,
		ClientID:     "test",
		ClientSecret: "secret",
	}, Timeout{})
	require.NoError(t, err)
	cache.now = clock.Now
	return cache
}

func TestCachedTokenReusesFreshToken(t *testing.T) {
	t.Parallel()

	srv, fetches := tokenServer(t, 60)
	clock := &fakeClock{t: time.Now()}
	cache := newTestCache(t, srv.URL, clock)

	ctx := context.Background()

	token, expiresAt, err := cache.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "cred1", token)
	require.Equal(t, 1, *fetches)

	// The returned expiry already has the margin subtracted.
	require.WithinDuration(t, clock.Now().Add(60*time.Second-TokenExpiryMargin), expiresAt, 2*time.Second)

	// 30s later the cached token is reused with no network call.
	clock.Advance(30 * time.Second)
	token, again, err := cache.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "cred1", token)
	require.Equal(t, expiresAt, again)
	require.Equal(t, 1, *fetches)

	// 56s after the first call the 5s margin has passed: exactly one
	// new fetch.
	clock.Advance(26 * time.Second)
	token, _, err = cache.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "cred2", token)
	require.Equal(t, 2, *fetches)
}

func TestCachedTokenSingleFetchPerValidityWindow(t *testing.T) {
	t.Parallel()

	srv, fetches := tokenServer(t, 120)
	clock := &fakeClock{t: time.Now()}
	cache := newTestCache(t, srv.URL, clock)

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		token, _, err := cache.Token(ctx)
		require.NoError(t, err)
		require.Equal(t, "cred1", token)
		clock.Advance(5 * time.Second) // stays within 120s - 5s margin
	}
	require.Equal(t, 1, *fetches)
}

func TestCachedTokenOverwritesOnRefresh(t *testing.T) {
	t.Parallel()

	srv, fetches := tokenServer(t, 10)
	clock := &fakeClock{t: time.Now()}
	cache := newTestCache(t, srv.URL, clock)

	ctx := context.Background()
	_, _, err := cache.Token(ctx)
	require.NoError(t, err)

	clock.Advance(10 * time.Second)
	token, _, err := cache.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "cred2", token, "replacement, not merge")
	require.Equal(t, 2, *fetches)
}

func TestCachedTokenDropsTokenOnFailedRefresh(t *testing.T) {
	t.Parallel()

	fail := false
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fetches++
		_, _ = fmt.Fprintf(w, `{"access_token":"cred%d","expires_in":10}`, fetches)
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	cache := newTestCache(t, srv.URL, clock)

	ctx := context.Background()
	_, _, err := cache.Token(ctx)
	require.NoError(t, err)

	// The refresh attempt fails: the error surfaces and the stale token is
	// dropped rather than preserved.
	clock.Advance(10 * time.Second)
	fail = true
	_, _, err = cache.Token(ctx)
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)

	// Recovery starts from scratch even within what would have been the old
	// token's window.
	fail = false
	token, _, err := cache.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "cred2", token)
}

func TestCachedTokenErrorsPropagateUnchanged(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Not JSON"))
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	cache := newTestCache(t, srv.URL, clock)

	_, _, err := cache.Token(context.Background())
	var respErr *TokenResponseError
	require.ErrorAs(t, err, &respErr)
}

func TestNewCachedTokenValidatesConfiguration(t *testing.T) {
	t.Parallel()

	_, err := NewCachedToken(Credentials{
		BaseURL:      "http://localhost:1",
		ClientID:     "test",
		ClientSecret: "secret",
		GrantType:    GrantTypeRefreshToken,
	}, Timeout{})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestCachedTokenConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	srv, fetches := tokenServer(t, 60)
	clock := &fakeClock{t: time.Now()}
	cache := newTestCache(t, srv.URL, clock)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, _, err := cache.Token(context.Background())
			require.NoError(t, err)
			require.Equal(t, "cred1", token)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, *fetches)
}
