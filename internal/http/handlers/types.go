// Package handlers provides typed Huma request/response structs and handler
// implementations for the ledstripd HTTP API.
package handlers

import (
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// Error messages returned to clients. Browsers and the CLI match on these.
const (
	MsgInvalidJSON     = "Invalid JSON"
	MsgMissingColor    = "Missing r, g, or b"
	MsgMissingValue    = "Missing value"
	MsgMissingState    = "Missing state"
	MsgBodyTooLarge    = "Request body too large"
	MsgUnavailable     = "Strip unavailable"
	MsgInternal        = "Internal error"
	MsgInvalidLogLevel = "Invalid log level"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// StatusResponse is the body of a successful mutation.
type StatusResponse struct {
	Status string `json:"status" doc:"Always ok" example:"ok"`
}

// --- Status ---

// GetStatusInput is the input for reading the strip state.
type GetStatusInput struct{}

// GetStatusOutput is the current strip state.
type GetStatusOutput struct {
	Body strip.Status
}

// --- Mutations ---

// SetColorInput is the input for changing the strip color.
type SetColorInput struct {
	Body strip.ColorRequest
}

// SetBrightnessInput is the input for changing the strip brightness.
type SetBrightnessInput struct {
	Body strip.BrightnessRequest
}

// SetPowerInput is the input for switching the strip on or off.
type SetPowerInput struct {
	Body strip.PowerRequest
}

// MutationOutput is returned by every successful mutation.
type MutationOutput struct {
	Body StatusResponse
}

// --- Strip info ---

// GetStripInput is the input for reading strip details.
type GetStripInput struct{}

// StripInfoResponse describes the attached strip and its state.
type StripInfoResponse struct {
	Driver string       `json:"driver" doc:"LED driver in use (noop, memory, ws281x)"`
	LEDs   int          `json:"leds" doc:"Number of pixels on the strip"`
	State  strip.Status `json:"state" doc:"Current strip state"`
}

// GetStripOutput is the output for strip details.
type GetStripOutput struct {
	Body StripInfoResponse
}
