package strip

// PropertyName represents the strip properties a request can change
type PropertyName string

const (
	// PropertyColor represents the r/g/b triple
	PropertyColor PropertyName = "color"

	// PropertyBrightness represents the global brightness
	PropertyBrightness PropertyName = "brightness"

	// PropertyPower represents the on/off state
	PropertyPower PropertyName = "power"
)

// PropertyValue is a single mutation of the strip state
type PropertyValue interface {
	// PropertyName returns the name of the property this value is for
	PropertyName() PropertyName

	// Value returns the raw value
	Value() any

	// Apply writes the value into s, leaving other properties untouched
	Apply(s *State)
}

// ColorValue sets all three channels at once
type ColorValue struct {
	R, G, B uint8
}

// PropertyName returns the name of the property
func (v ColorValue) PropertyName() PropertyName {
	return PropertyColor
}

// Value returns the channels as a three element array
func (v ColorValue) Value() any {
	return [3]uint8{v.R, v.G, v.B}
}

// Apply sets r, g and b
func (v ColorValue) Apply(s *State) {
	s.R, s.G, s.B = v.R, v.G, v.B
}

// BrightnessValue represents a brightness level
type BrightnessValue uint8

// PropertyName returns the name of the property
func (v BrightnessValue) PropertyName() PropertyName {
	return PropertyBrightness
}

// Value returns the underlying level
func (v BrightnessValue) Value() any {
	return uint8(v)
}

// Apply sets the brightness
func (v BrightnessValue) Apply(s *State) {
	s.Brightness = uint8(v)
}

// PowerValue represents an on/off state
type PowerValue bool

// PropertyName returns the name of the property
func (v PowerValue) PropertyName() PropertyName {
	return PropertyPower
}

// Value returns the underlying bool
func (v PowerValue) Value() any {
	return bool(v)
}

// Apply sets the power flag
func (v PowerValue) Apply(s *State) {
	s.Power = bool(v)
}
