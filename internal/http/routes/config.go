// Package routes provides shared route registration for the ledstripd HTTP API.
// Both the main server and the OpenAPI generator use the same route definitions,
// so the published document always matches the implementation.
package routes

import (
	"github.com/danielgtaylor/huma/v2"
)

// NewHumaConfig creates the shared Huma configuration for the API.
func NewHumaConfig(version, baseURL string) huma.Config {
	cfg := huma.DefaultConfig("ledstripd API", version)
	cfg.Info.Description = "REST API for controlling a single-zone addressable LED strip."

	// Disable $schema field in responses
	cfg.CreateHooks = nil

	if baseURL != "" {
		cfg.Servers = []*huma.Server{
			{URL: baseURL, Description: "API Server"},
		}
	}

	cfg.Tags = []*huma.Tag{
		{Name: "Strip", Description: "Color, brightness and power control"},
		{Name: "Health", Description: "Liveness"},
		{Name: "Version", Description: "Build information"},
		{Name: "Logging", Description: "Runtime log level management"},
	}

	return cfg
}
