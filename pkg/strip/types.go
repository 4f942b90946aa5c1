// Package strip owns the state of a single-zone LED strip and serialises
// every change to it.
package strip

import (
	"math"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// State is the desired appearance of the whole strip.
type State struct {
	R          uint8
	G          uint8
	B          uint8
	Brightness uint8
	Power      bool
}

// DefaultState is the state at boot: white, half brightness, on.
func DefaultState() State {
	return State{
		R:          config.DefaultChannel,
		G:          config.DefaultChannel,
		B:          config.DefaultChannel,
		Brightness: config.DefaultBrightness,
		Power:      true,
	}
}

// Status is the wire form of State.
type Status struct {
	R          int  `json:"r" doc:"Red channel (0-255)"`
	G          int  `json:"g" doc:"Green channel (0-255)"`
	B          int  `json:"b" doc:"Blue channel (0-255)"`
	Brightness int  `json:"brightness" doc:"Global brightness (0-255)"`
	Power      bool `json:"power" doc:"Whether the strip is lit"`
}

// Status converts the state to its wire form.
func (s State) Status() Status {
	return Status{
		R:          int(s.R),
		G:          int(s.G),
		B:          int(s.B),
		Brightness: int(s.Brightness),
		Power:      s.Power,
	}
}

// ClampByte limits v to the 0-255 range of a channel or brightness.
func ClampByte(v int) uint8 {
	switch {
	case v < config.MinChannel:
		return config.MinChannel
	case v > config.MaxChannel:
		return config.MaxChannel
	default:
		return uint8(v)
	}
}

// ClampNumber truncates v toward zero and limits it to 0-255.
func ClampNumber(v float64) uint8 {
	v = math.Trunc(v)
	switch {
	case v < config.MinChannel:
		return config.MinChannel
	case v > config.MaxChannel:
		return config.MaxChannel
	default:
		return uint8(v)
	}
}
