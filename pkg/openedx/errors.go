package openedx

import (
	"fmt"
)

// ConfigurationError reports an invalid combination of credentials and grant
// type, such as requesting the refresh_token grant without supplying a
// refresh token. It is fatal: retrying the same configuration cannot succeed.
type ConfigurationError struct {
	// Reason describes what is wrong with the configuration.
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "openedx: invalid configuration: " + e.Reason
}

// HTTPStatusError is returned when the token endpoint or an API endpoint
// responds with a non-success status code. It carries the status and the raw
// response body for diagnostics.
type HTTPStatusError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Body is the raw response body. It may be empty.
	Body []byte
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("openedx: request failed with status %d: %s", e.StatusCode, e.Body)
}

// TokenResponseError is returned when the token endpoint answered with a
// success status but a body that cannot be interpreted as a token grant:
// not valid JSON, or missing the access_token or expires_in keys. It is
// distinct from transport errors and from HTTPStatusError so callers can tell
// "couldn't reach the auth endpoint" apart from "the auth endpoint misbehaved".
type TokenResponseError struct {
	// Body is the raw response body, kept for diagnostics.
	Body []byte

	// err is the underlying decode error, nil when a required key was
	// simply absent.
	err error
}

// Error implements the error interface.
func (e *TokenResponseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("openedx: malformed token response: %v: %s", e.err, e.Body)
	}
	return fmt.Sprintf("openedx: malformed token response: %s", e.Body)
}

// Unwrap returns the underlying decode error, if any.
func (e *TokenResponseError) Unwrap() error {
	return e.err
}
