package led

// Color is a 24-bit RGB pixel value.
type Color struct {
	R, G, B uint8
}

// Off is the all-zero pixel.
var Off = Color{}

// RGB builds a Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Uint32 packs the color as 0x00RRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Scale dims c by brightness the way the strip hardware does: 255 is full
// intensity and 0 is dark.
func Scale(c Color, brightness uint8) Color {
	scale := func(v uint8) uint8 {
		return uint8((uint16(v) * (uint16(brightness) + 1)) >> 8)
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

// Device abstracts an addressable LED strip.
// Fill and SetBrightness only stage the next frame; Show pushes it to the
// pixels and returns once the transfer is complete.
type Device interface {
	// Fill sets every pixel to c.
	Fill(c Color)

	// SetBrightness sets the global brightness applied on Show.
	SetBrightness(b uint8)

	// Show pushes the staged frame to the strip.
	Show() error

	// Len returns the number of pixels.
	Len() int

	// Name identifies the driver in logs and API responses.
	Name() string

	// Close releases the hardware.
	Close() error
}
