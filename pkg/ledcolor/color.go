// Package ledcolor provides the color types and integer color math used by
// the LED matrix engine: a packed straight-alpha RGBA value type, the
// integer-only HSV to RGB conversion, and Porter-Duff SourceOver compositing.
//
// All arithmetic is 8-bit fixed point. Downstream golden frames are
// calibrated to the exact rounding of these routines, so they must not be
// "improved" to mathematically exact color math.
package ledcolor

// RGBA is a straight-alpha (non-premultiplied) color with 8 bits per
// channel. The zero value is transparent black. The packed wire form is
// 0xAARRGGBB with alpha in the most significant byte.
type RGBA struct {
	A, R, G, B uint8
}

// Predefined colors. All opaque except Transparent.
var (
	Transparent = RGBA{}
	Black       = NewRGB(0, 0, 0)
	White       = NewRGB(255, 255, 255)
	Red         = NewRGB(255, 0, 0)
	Orange      = NewRGB(255, 165, 0)
	Yellow      = NewRGB(255, 255, 0)
	Green       = NewRGB(0, 255, 0)
	Cyan        = NewRGB(0, 255, 255)
	Blue        = NewRGB(0, 0, 255)
	Magenta     = NewRGB(255, 0, 255)
	Purple      = NewRGB(128, 0, 128)
)

// NewRGB returns an opaque color.
func NewRGB(r, g, b uint8) RGBA {
	return RGBA{A: 0xff, R: r, G: g, B: b}
}

// NewARGB returns a color with an explicit alpha.
func NewARGB(a, r, g, b uint8) RGBA {
	return RGBA{A: a, R: r, G: g, B: b}
}

// FromPacked unpacks a 0xAARRGGBB value. A zero alpha byte is promoted to
// opaque, so plain 0xRRGGBB literals read as solid colors; this is not a way
// to construct transparent colors, use NewARGB for that.
func FromPacked(v uint32) RGBA {
	a := uint8(v >> 24)
	if a == 0 {
		a = 0xff
	}
	return RGBA{A: a, R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Packed returns the color as 0xAARRGGBB.
func (c RGBA) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Opaque reports whether the color has full alpha.
func (c RGBA) Opaque() bool {
	return c.A == 0xff
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

// Scale multiplies all four channels by f/255, rounding to nearest.
func (c RGBA) Scale(f uint8) RGBA {
	return RGBA{A: Mul8(c.A, f), R: Mul8(c.R, f), G: Mul8(c.G, f), B: Mul8(c.B, f)}
}

// RGBA implements image/color.Color. The returned values are
// alpha-premultiplied and scaled to 16 bits per the color.Color contract.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	r *= uint32(c.A)
	r /= 0xff
	g = uint32(c.G)
	g |= g << 8
	g *= uint32(c.A)
	g /= 0xff
	b = uint32(c.B)
	b |= b << 8
	b *= uint32(c.A)
	b /= 0xff
	a = uint32(c.A)
	a |= a << 8
	return
}
