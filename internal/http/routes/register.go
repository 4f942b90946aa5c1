package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/jmylchreest/ledstripd/internal/http/handlers"
	"github.com/jmylchreest/ledstripd/internal/http/mw"
)

// Paths served to the bundled web client.
const (
	PathColor      = "/api/color"
	PathBrightness = "/api/brightness"
	PathPower      = "/api/power"
	PathStatus     = "/api/status"
)

// PreflightPaths lists the routes that answer CORS preflight requests.
var PreflightPaths = []string{PathColor, PathBrightness, PathPower, PathStatus}

// Register registers all API routes with the given Huma API instance.
// Pass real handler implementations for the main server, or stub implementations
// for OpenAPI generation.
func Register(api huma.API, h *Handlers) {
	// --- Strip ---
	mw.PublicGet(api, PathStatus, h.Strip.GetStatus,
		mw.WithTags("Strip"),
		mw.WithSummary("Get strip state"),
		mw.WithDescription("Returns the color, brightness and power state."),
		mw.WithOperationID("getStatus"))

	// The three mutations are served by raw Chi routes (see RegisterRaw) so
	// every error body is {"error": "..."}. They are registered here for
	// OpenAPI documentation purposes.
	mw.PublicPost(api, PathColor, h.Strip.SetColor,
		mw.WithTags("Strip"),
		mw.WithSummary("Set color"),
		mw.WithDescription("Sets r, g and b together. Values are clamped to 0-255. Returns 400 with {\"error\":\"Missing r, g, or b\"} if any channel is absent or null, or {\"error\":\"Invalid JSON\"} if the body does not parse."),
		mw.WithOperationID("setColor"),
		mw.WithErrors(http.StatusBadRequest))

	mw.PublicPost(api, PathBrightness, h.Strip.SetBrightness,
		mw.WithTags("Strip"),
		mw.WithSummary("Set brightness"),
		mw.WithDescription("Sets the global brightness. The value is clamped to 0-255. Returns 400 with {\"error\":\"Missing value\"} if value is absent."),
		mw.WithOperationID("setBrightness"),
		mw.WithErrors(http.StatusBadRequest))

	mw.PublicPost(api, PathPower, h.Strip.SetPower,
		mw.WithTags("Strip"),
		mw.WithSummary("Set power"),
		mw.WithDescription("Switches the strip on or off. Color and brightness are kept while off. Returns 400 with {\"error\":\"Missing state\"} if state is absent."),
		mw.WithOperationID("setPower"),
		mw.WithErrors(http.StatusBadRequest))

	mw.PublicGet(api, "/api/v1/strip", h.Strip.GetStrip,
		mw.WithTags("Strip"),
		mw.WithSummary("Get strip details"),
		mw.WithDescription("Returns the LED driver, pixel count and current state."),
		mw.WithOperationID("getStrip"))

	// --- Health ---
	mw.PublicGet(api, "/api/v1/health", handlers.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithDescription("Returns service health status."),
		mw.WithOperationID("healthCheck"))

	mw.HiddenGet(api, "/healthz", handlers.HealthCheck)

	// --- Version ---
	mw.PublicGet(api, "/api/v1/version", h.Version.GetVersion,
		mw.WithTags("Version"),
		mw.WithSummary("Daemon version"),
		mw.WithDescription("Returns the running daemon's version, commit, and build date."),
		mw.WithOperationID("getVersion"))

	// --- Logging ---
	mw.PublicGet(api, "/api/v1/logging/level", h.Logging.GetLevel,
		mw.WithTags("Logging"),
		mw.WithSummary("Get global log level"),
		mw.WithOperationID("getLogLevel"))

	mw.PublicPut(api, "/api/v1/logging/level", h.Logging.SetLevel,
		mw.WithTags("Logging"),
		mw.WithSummary("Set global log level"),
		mw.WithDescription("Changes the global log level at runtime. Valid values: debug, info, warn, error."),
		mw.WithOperationID("setLogLevel"))
}

// RegisterRaw replaces the Huma mutation routes with raw handlers and adds
// the CORS preflight routes. It must run after Register so the raw handlers
// win.
func RegisterRaw(r chi.Router, h *Handlers) {
	r.Post(PathColor, h.Strip.SetColorRaw())
	r.Post(PathBrightness, h.Strip.SetBrightnessRaw())
	r.Post(PathPower, h.Strip.SetPowerRaw())

	for _, p := range PreflightPaths {
		r.Options(p, handlers.Preflight)
	}
}
