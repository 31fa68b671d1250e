// Package cli holds the environment-based configuration for the openedx
// command line tool. The SDK packages take explicit configuration structs;
// only the binary reads the environment.
package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the openedx CLI.
type Config struct {
	// LMS connection. BaseURL must include the scheme.
	BaseURL      string `env:"OPENEDX_LMS_URL"`
	ClientID     string `env:"OPENEDX_CLIENT_ID"`
	ClientSecret string `env:"OPENEDX_CLIENT_SECRET"`

	// Optional organization filter for course listings.
	Org string `env:"OPENEDX_ORG" envDefault:""`

	// Token type requested from the auth endpoint (bearer or jwt).
	TokenType string `env:"OPENEDX_TOKEN_TYPE" envDefault:"bearer"`

	// Environment controls log verbosity and format.
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("OPENEDX_LMS_URL is required")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("OPENEDX_CLIENT_ID and OPENEDX_CLIENT_SECRET are required")
	}
	switch c.TokenType {
	case "bearer", "jwt":
	default:
		return fmt.Errorf("OPENEDX_TOKEN_TYPE must be bearer or jwt, got %q", c.TokenType)
	}
	return nil
}
