package main

import (
	"strings"

	"github.com/shivam-bit/highlight/internal/app"
	"github.com/shivam-bit/highlight/internal/client"
	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/logging"
)

type clientFactory func(cfg config.CoreConfig, logger logging.Logger) (app.API, error)

func newAPIClient(cfg config.CoreConfig, logger logging.Logger) (app.API, error) {
	return client.New(cfg, logger), nil
}

// resolveProject prefers the --project flag over the configured project.
func resolveProject(flagValue string, cfg config.CoreConfig) (string, error) {
	if id := strings.TrimSpace(flagValue); id != "" {
		return id, nil
	}
	if id := cfg.ProjectID(); id != "" {
		return id, nil
	}
	return "", errProjectRequired
}
