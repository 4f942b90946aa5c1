package routes

import (
	"github.com/jmylchreest/ledstripd/internal/http/handlers"
)

// Handlers aggregates all handler interfaces for route registration.
// For the main server, pass real handler implementations.
// For OpenAPI generation, pass stub implementations.
type Handlers struct {
	Strip   handlers.StripHandlers
	Version handlers.VersionHandlers
	Logging handlers.LoggingHandlers
}
