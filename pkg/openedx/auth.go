package openedx

// TokenType selects the Authorization scheme a session presents to the API.
// The Open edX token endpoint issues either an opaque bearer token or a JWT
// depending on the token_type it is asked for, and the corresponding scheme
// prefix must be used when the token is attached to requests.
type TokenType string

const (
	// TokenTypeBearer requests an opaque token presented as "Bearer <token>".
	TokenTypeBearer TokenType = "bearer"

	// TokenTypeJWT requests a JWT presented as "JWT <token>".
	TokenTypeJWT TokenType = "jwt"
)

// AuthorizationHeader formats token into an Authorization header value using
// the scheme for this token type. An unset token still formats; sessions
// always authenticate before attaching headers to an outbound request, so a
// formatted empty token is never sent over the wire.
func (t TokenType) AuthorizationHeader(token string) string {
	if t == TokenTypeJWT {
		return "JWT " + token
	}
	return "Bearer " + token
}

// GrantType is the OAuth2 flow used to obtain an access token.
type GrantType string

const (
	// GrantTypeClientCredentials authenticates the client as itself (M2M).
	GrantTypeClientCredentials GrantType = "client_credentials"

	// GrantTypeRefreshToken exchanges a previously issued refresh token.
	GrantTypeRefreshToken GrantType = "refresh_token"
)
