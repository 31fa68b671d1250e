package openedx

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Timeouts for requests against the token endpoint. These are deliberately
// independent of whatever timeout the caller configures for API requests.
const (
	// DefaultConnectTimeout bounds how long we wait to connect to the auth
	// service.
	DefaultConnectTimeout = 3050 * time.Millisecond

	// DefaultReadTimeout bounds the whole token exchange once connected.
	DefaultReadTimeout = 5 * time.Second
)

// Timeout holds the connect and read timeouts for token requests.
// Zero fields fall back to the package defaults.
type Timeout struct {
	Connect time.Duration
	Read    time.Duration
}

func (t Timeout) orDefaults() Timeout {
	if t.Connect <= 0 {
		t.Connect = DefaultConnectTimeout
	}
	if t.Read <= 0 {
		t.Read = DefaultReadTimeout
	}
	return t
}

// newTokenHTTPClient builds the http.Client used for token requests, with a
// dial timeout for the connect phase and an overall deadline for the exchange.
func newTokenHTTPClient(t Timeout) *http.Client {
	t = t.orDefaults()
	return &http.Client{
		Timeout: t.Read,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: t.Connect}).DialContext,
		},
	}
}

// Credentials identifies an OAuth2 client to the token endpoint. It is
// immutable once a cache or session has been constructed from it.
type Credentials struct {
	// BaseURL is the URL of the auth endpoint, which may already include
	// some or all of the /oauth2/access_token path. See OAuthURL.
	BaseURL string

	// ClientID and ClientSecret are created in the LMS admin
	// (<lms base url>/admin/oauth2/client/).
	ClientID     string
	ClientSecret string

	// TokenType is the kind of token to request. Defaults to TokenTypeJWT.
	TokenType TokenType

	// GrantType is the OAuth2 flow to use. Defaults to GrantTypeClientCredentials.
	GrantType GrantType

	// RefreshToken is required when GrantType is GrantTypeRefreshToken.
	RefreshToken string
}

// withDefaults fills in the zero-value token and grant types.
func (c Credentials) withDefaults() Credentials {
	if c.TokenType == "" {
		c.TokenType = TokenTypeJWT
	}
	if c.GrantType == "" {
		c.GrantType = GrantTypeClientCredentials
	}
	return c
}

// validate reports a ConfigurationError for credential combinations that can
// never authenticate, before any network call is made.
func (c Credentials) validate() error {
	if c.GrantType == GrantTypeRefreshToken && c.RefreshToken == "" {
		return &ConfigurationError{Reason: "refresh_token grant requires a refresh token"}
	}
	return nil
}

// OAuthURL returns the complete URL for the oauth2 token endpoint.
//
// The base URL may optionally include some or all of the path
// /oauth2/access_token. Common settings that work as base include:
//
//	http://edx.devstack.lms:18000
//	http://edx.devstack.lms:18000/oauth2
//
// The result is idempotent: OAuthURL(OAuthURL(u)) == OAuthURL(u).
func OAuthURL(base string) string {
	stripped := strings.TrimRight(base, "/")
	switch {
	case strings.HasSuffix(stripped, "/access_token"):
		return stripped
	case strings.HasSuffix(stripped, "/oauth2"):
		return stripped + "/access_token"
	default:
		return stripped + "/oauth2/access_token"
	}
}

// GetOAuthAccessToken retrieves an OAuth 2.0 access token using the grant
// type in creds. The URL is normalized with OAuthURL before the request.
//
// The expiry is computed from the wall clock captured before the network
// call, so request latency errs toward expiring the token early.
//
// Errors: *ConfigurationError for an unusable credential combination (no
// network call is made), transport errors from the underlying http.Client
// unchanged, *HTTPStatusError for non-2xx responses, and *TokenResponseError
// when a 2xx body is not a valid token grant.
func GetOAuthAccessToken(ctx context.Context, client *http.Client, creds Credentials) (string, time.Time, error) {
	creds = creds.withDefaults()
	if err := creds.validate(); err != nil {
		return "", time.Time{}, err
	}

	form := url.Values{
		"grant_type":    {string(creds.GrantType)},
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
		"token_type":    {string(creds.TokenType)},
	}
	if creds.GrantType == GrantTypeRefreshToken {
		form.Set("refresh_token", creds.RefreshToken)
	}

	now := time.Now()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		OAuthURL(creds.BaseURL),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", time.Time{}, &HTTPStatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var grant tokenResponse
	if err := json.Unmarshal(body, &grant); err != nil {
		return "", time.Time{}, &TokenResponseError{Body: body, err: err}
	}
	if grant.AccessToken == "" || grant.ExpiresIn == nil {
		return "", time.Time{}, &TokenResponseError{Body: body}
	}

	return grant.AccessToken, now.Add(time.Duration(*grant.ExpiresIn) * time.Second), nil
}
