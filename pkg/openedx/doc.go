/*
Package openedx provides a client for the Open edX REST APIs, authenticating
against the platform's OAuth2 endpoint with client credentials.

# Client vs Session

The package is organized around two main types:

  - Client: higher-level access to specific Open edX endpoints (course
    listing, bulk enrollment)
  - Session: authenticated HTTP requests against any endpoint, with
    transparent token caching and refresh

Create a Client for the covered endpoints:

	client, err := openedx.NewClient(openedx.ClientConfig{
		BaseURL:      "https://lms.example.com",
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
	if err != nil {
		log.Fatal(err)
	}

	courses, err := client.ListAllCourses(ctx, "MyOrg")

	result, err := client.ChangeEnrollment(ctx,
		[]string{"student@example.com"},
		[]string{"course-v1:MyOrg+CS101+2026"},
		openedx.ActionEnroll, nil)

Use a Session directly for endpoints the Client does not cover:

	session, err := openedx.NewSession(openedx.SessionConfig{
		BaseURL:      "https://lms.example.com",
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})

	resp, err := session.Get(ctx, session.BaseURL()+"/api/enrollment/v1/roles/", nil)

# Token caching

Sessions fetch an access token lazily on the first request and cache it for
the lifetime reported by the token endpoint, minus a small safety margin so a
token never expires mid-flight. Requests made while the cached token is fresh
reuse it without a network call; the first request at or past the adjusted
expiry fetches a replacement. There is no background refresh timer and the
token lives only in process memory.

Token requests use their own connect and read timeouts (3.05s / 5s by
default), independent of whatever deadline API requests carry.

# Token types

The token endpoint issues either an opaque bearer token or a JWT, selected by
TokenType. The matching Authorization scheme ("Bearer <token>" or
"JWT <token>") is applied automatically. Client defaults to bearer, Session
to JWT, matching how the platform is commonly configured for each use.

Callers that need the token's claims can read the raw value:

	token, err := session.AccessToken(ctx)

The library itself never decodes or validates tokens.

# The auth endpoint URL

The token endpoint is derived from the base URL, which may already include
part of the path: "https://lms.example.com", ".../oauth2" and
".../oauth2/access_token" all resolve to the same endpoint. When the auth
host differs from the API host, set OAuthURI to redirect the token endpoint
relative to the base URL.

# Error handling

Errors are never retried or swallowed; the caller owns retry policy. Failures
are typed so they can be told apart with errors.As:

  - *ConfigurationError: the credential combination can never authenticate
    (reported at construction, before any network call)
  - *HTTPStatusError: an endpoint answered with a non-success status
  - *TokenResponseError: the token endpoint answered 200 with a body that is
    not a valid grant
  - transport errors (*url.Error etc.) pass through unchanged

A request is never sent with missing or stale authentication: if the token
cannot be obtained, the outbound request is not made and the token error is
returned instead.

# Concurrency

A Session and its token cache are safe for concurrent use. Concurrent callers
that observe a stale token converge on a single fetch; the others block until
it completes and then reuse the result.
*/
package openedx
