// Package main provides a CLI tool to generate the OpenAPI specification for the ledstripd API.
// This binary uses the shared route definitions with stub handlers to produce an accurate
// OpenAPI spec without requiring a strip or any other services.
//
// Usage:
//
//	go run ./cmd/ledstrip-openapi > openapi.json
//	go run ./cmd/ledstrip-openapi -yaml > openapi.yaml
//	go run ./cmd/ledstrip-openapi -output openapi.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/ledstripd/internal/config"
	"github.com/jmylchreest/ledstripd/internal/http/routes"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
)

// generate renders the OpenAPI document for every registered route.
func generate(baseURL string, asYAML bool) ([]byte, error) {
	// The router only collects registrations; nothing is served.
	router := chi.NewRouter()
	api := humachi.New(router, routes.NewHumaConfig(version, baseURL))
	routes.Register(api, routes.StubHandlers())

	spec := api.OpenAPI()
	if asYAML {
		return yaml.Marshal(spec)
	}
	return json.MarshalIndent(spec, "", "  ")
}

func main() {
	outputFile := flag.String("output", "", "Output file path (default: stdout)")
	outputYAML := flag.Bool("yaml", false, "Output as YAML instead of JSON")
	baseURL := flag.String("base-url", config.DefaultDeviceURL, "Base URL for the API server")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	data, err := generate(*baseURL, *outputYAML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling OpenAPI spec: %v\n", err)
		os.Exit(1)
	}

	// Output to file or stdout
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "OpenAPI spec written to %s\n", *outputFile)
	} else {
		fmt.Print(string(data))
	}
}
