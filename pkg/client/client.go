// Package client talks to a running ledstripd over its HTTP API.
package client

import (
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// ClientInterface defines the methods for interacting with ledstripd.
// Used for testability and mocking in the CLI.
type ClientInterface interface {
	GetStatus() (strip.Status, error)
	GetStripInfo() (StripInfo, error)
	GetVersion() (map[string]any, error)
	SetColor(r, g, b int) error
	SetBrightness(value int) error
	SetPower(on bool) error
}

// StripInfo is the response of /api/v1/strip.
type StripInfo struct {
	Driver string       `json:"driver"`
	LEDs   int          `json:"leds"`
	State  strip.Status `json:"state"`
}

var _ ClientInterface = (*HTTPClient)(nil)
