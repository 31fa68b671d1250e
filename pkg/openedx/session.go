package openedx

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aulasneo/openedx-rest-api-client/pkg/idx"
)

// Doer abstracts the HTTP transport a session sends authenticated requests
// through. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// BaseURL is the base URL of the LMS, including the scheme. The token
	// endpoint is derived from it (see OAuthURL) unless OAuthURI is set.
	BaseURL string

	// ClientID and ClientSecret identify the OAuth2 client.
	ClientID     string
	ClientSecret string

	// TokenType selects the Authorization scheme. Defaults to TokenTypeJWT.
	TokenType TokenType

	// GrantType defaults to GrantTypeClientCredentials. RefreshToken is
	// required for GrantTypeRefreshToken.
	GrantType    GrantType
	RefreshToken string

	// Timeout applies to token requests only; API requests use whatever
	// deadline the Transport or the caller's context carries.
	Timeout Timeout

	// OAuthURI optionally redirects the token endpoint relative to BaseURL,
	// for deployments where the auth host path differs from the API host.
	// The combined URL is still normalized, so "/edx" and "/edx/oauth2"
	// both resolve to "<base>/edx/oauth2/access_token".
	OAuthURI string

	// Transport is the HTTP client used for API requests.
	// Defaults to a plain http.Client.
	Transport Doer
}

// Session issues HTTP requests that are transparently authenticated against
// the Open edX OAuth2 endpoint. Before every outbound request it ensures its
// token cache holds a fresh access token and injects it as the Authorization
// header; callers never manage tokens themselves.
//
// A Session owns exactly one CachedToken, created with it.
type Session struct {
	baseURL   string
	tokenType TokenType
	cache     *CachedToken
	transport Doer
	userAgent string
}

// NewSession creates an authenticated session. It returns a
// *ConfigurationError, before any network call, if the credential
// combination can never authenticate. No token is fetched until the first
// request.
func NewSession(cfg SessionConfig) (*Session, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	oauthBase := baseURL
	if cfg.OAuthURI != "" {
		oauthBase = baseURL + cfg.OAuthURI
	}

	creds := Credentials{
		BaseURL:      oauthBase,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenType:    cfg.TokenType,
		GrantType:    cfg.GrantType,
		RefreshToken: cfg.RefreshToken,
	}.withDefaults()

	cache, err := NewCachedToken(creds, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Client{}
	}

	return &Session{
		baseURL:   baseURL,
		tokenType: creds.TokenType,
		cache:     cache,
		transport: transport,
		userAgent: UserAgent(),
	}, nil
}

// BaseURL returns the session's base URL without a trailing slash.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// AccessToken ensures the session is authenticated and returns the current
// access token. It exists so callers can decode the token's claims
// themselves; this library never decodes tokens, and the returned value
// should not be used to build another client.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	token, _, err := s.cache.Token(ctx)
	return token, err
}

// Request sends an authenticated request. It ensures a fresh access token
// first; if that fails the error is returned and nothing is sent, so a
// request is never made with missing or stale authentication.
//
// Caller headers are applied before the Authorization header, which is
// always the freshly computed value and cannot be clobbered. An X-Request-ID
// is generated when the caller does not supply one.
func (s *Session) Request(ctx context.Context, method, requestURL string, body io.Reader, headers map[string]string) (*http.Response, error) {
	token, _, err := s.cache.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Authorization", s.tokenType.AuthorizationHeader(token))
	req.Header.Set("User-Agent", s.userAgent)
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", idx.New().String())
	}

	return s.transport.Do(req)
}

// Get sends an authenticated GET request. Query parameters, if any, replace
// the query string of requestURL.
func (s *Session) Get(ctx context.Context, requestURL string, query url.Values) (*http.Response, error) {
	if len(query) > 0 {
		u, err := url.Parse(requestURL)
		if err != nil {
			return nil, err
		}
		u.RawQuery = query.Encode()
		requestURL = u.String()
	}
	return s.Request(ctx, http.MethodGet, requestURL, nil, nil)
}

// Post sends an authenticated POST request with the given content type.
func (s *Session) Post(ctx context.Context, requestURL, contentType string, body io.Reader) (*http.Response, error) {
	return s.Request(ctx, http.MethodPost, requestURL, body, map[string]string{
		"Content-Type": contentType,
	})
}
