// Command openedx lists the courses visible to the configured OAuth2 client,
// mainly as a connectivity check for a deployment's credentials.
package main

import (
	"context"
	"log"
	"os"

	"github.com/aulasneo/openedx-rest-api-client/internal/cli"
	"github.com/aulasneo/openedx-rest-api-client/pkg/openedx"
	"github.com/aulasneo/openedx-rest-api-client/pkg/slogx"
)

func main() {
	cfg, err := cli.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slogx.New(slogx.Config{
		Service: "openedx-cli",
		Version: openedx.Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	client, err := openedx.NewClient(openedx.ClientConfig{
		BaseURL:      cfg.BaseURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenType:    openedx.TokenType(cfg.TokenType),
	})
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}

	courses, err := client.ListAllCourses(context.Background(), cfg.Org)
	if err != nil {
		logger.Error("failed to list courses", "error", err)
		os.Exit(1)
	}

	logger.Info("listed courses", "count", len(courses), "org", cfg.Org)
	for _, course := range courses {
		logger.Info("course", "id", course.ID, "name", course.Name, "org", course.Org)
	}
}
