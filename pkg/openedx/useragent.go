package openedx

import (
	"fmt"
	"os"
)

// Version of this client library.
const Version = "1.1.0"

// ClientNameEnvVar names the environment variable consulted for the
// application name reported in the User-Agent header.
const ClientNameEnvVar = "EDX_REST_API_CLIENT_NAME"

const (
	libraryName       = "openedx-rest-api-client"
	baseAgent         = "Go-http-client/1.1"
	unknownClientName = "unknown_client_name"
)

// UserAgent returns a User-Agent value that identifies this client.
//
// Example:
//
//	Go-http-client/1.1 openedx-rest-api-client/1.1.0 ecommerce
//
// The last item is the application name, taken from the EDX_REST_API_CLIENT_NAME
// environment variable. If that variable is not set it falls back to the local
// hostname, and failing that to a fixed placeholder.
func UserAgent() string {
	name := os.Getenv(ClientNameEnvVar)
	if name == "" {
		if hostname, err := os.Hostname(); err == nil && hostname != "" {
			name = hostname
		} else {
			name = unknownClientName
		}
	}
	return fmt.Sprintf("%s %s/%s %s", baseAgent, libraryName, Version, name)
}
