package openedx

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserAgentFromEnv(t *testing.T) {
	t.Setenv(ClientNameEnvVar, "ecommerce")

	agent := UserAgent()
	require.Equal(t, "Go-http-client/1.1 openedx-rest-api-client/"+Version+" ecommerce", agent)
}

func TestUserAgentFallsBackToHostname(t *testing.T) {
	t.Setenv(ClientNameEnvVar, "")

	agent := UserAgent()
	parts := strings.Fields(agent)
	require.Len(t, parts, 3)
	require.Equal(t, "openedx-rest-api-client/"+Version, parts[1])

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		require.Equal(t, hostname, parts[2])
	}
}
