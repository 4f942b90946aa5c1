package strip

import (
	"encoding/json"
	stderrors "errors"

	"github.com/jmylchreest/ledstripd/internal/errors"
)

// ColorRequest is the body of a color change. Fractions are truncated and out
// of range values are clamped.
type ColorRequest struct {
	R *float64 `json:"r,omitempty" doc:"Red channel, clamped to 0-255"`
	G *float64 `json:"g,omitempty" doc:"Green channel, clamped to 0-255"`
	B *float64 `json:"b,omitempty" doc:"Blue channel, clamped to 0-255"`
}

// Value validates the request and returns the mutation it describes.
func (r ColorRequest) Value() (ColorValue, error) {
	if r.R == nil || r.G == nil || r.B == nil {
		return ColorValue{}, errors.MissingFieldf("color requires r, g and b")
	}
	return ColorValue{R: ClampNumber(*r.R), G: ClampNumber(*r.G), B: ClampNumber(*r.B)}, nil
}

// BrightnessRequest is the body of a brightness change.
type BrightnessRequest struct {
	Value *float64 `json:"value,omitempty" doc:"Brightness, clamped to 0-255"`
}

// Property validates the request and returns the mutation it describes.
func (r BrightnessRequest) Property() (BrightnessValue, error) {
	if r.Value == nil {
		return 0, errors.MissingFieldf("brightness requires value")
	}
	return BrightnessValue(ClampNumber(*r.Value)), nil
}

// PowerRequest is the body of a power change.
type PowerRequest struct {
	State *bool `json:"state,omitempty" doc:"true to light the strip, false to blank it"`
}

// Property validates the request and returns the mutation it describes.
func (r PowerRequest) Property() (PowerValue, error) {
	if r.State == nil {
		return false, errors.MissingFieldf("power requires state")
	}
	return PowerValue(*r.State), nil
}

// Decode parses a JSON request body into T. Syntax errors and fields of the
// wrong type are reported as a malformed payload. A body that is valid JSON
// but not an object (null, [], a bare number) has no keys and decodes to the
// zero T, leaving the missing-key check to the caller.
func Decode[T any](body []byte) (T, error) {
	var v T
	if !json.Valid(body) {
		return v, errors.MalformedPayloadf("decoding request body: invalid JSON")
	}
	if err := json.Unmarshal(body, &v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field == "" {
			var zero T
			return zero, nil
		}
		return v, errors.MalformedPayloadf("decoding request body: %v", err)
	}
	return v, nil
}
