package effects

import (
	"image"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Palette paints a static hue sweep over the destination rect: full
// saturation and value, hue advancing by one every Wide pixels in row-major
// order and wrapping after 256 steps.
type Palette struct {
	// Wide is the number of consecutive pixels sharing one hue step.
	// Values below 1 are treated as 1.
	Wide int

	Rect image.Rectangle
}

// NewPalette returns a palette strip with one pixel per hue step.
func NewPalette() *Palette {
	return &Palette{Wide: 1}
}

// Recalc is a no-op, the palette is static.
func (p *Palette) Recalc(time.Duration) {}

// Render paints the hue sweep.
func (p *Palette) Render(m *matrix.Matrix) {
	t := target(m, p.Rect)
	wide := max(p.Wide, 1)

	idx := 0
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			hue := uint8((idx / wide) % 256)
			m.Set(x, y, ledcolor.HSV{H: hue, S: 255, V: 255}.RGB())
			idx++
		}
	}
}

// RainbowWave scrolls a hue gradient through the destination rect. The hue
// advances by 256/Len per pixel, and the whole pattern shifts by one pixel
// every Speed milliseconds.
type RainbowWave struct {
	// Len is the number of pixels one full hue cycle is stretched over.
	// Values below 1 are treated as 1.
	Len int

	// Pos shifts the pattern by a constant pixel offset.
	Pos uint8

	// Speed is the scroll interval in milliseconds per pixel. Values below
	// 1 are treated as 1.
	Speed int

	// Reverse flips the scroll direction.
	Reverse bool

	Rect image.Rectangle

	offset uint16
}

// NewRainbowWave returns a wave with one hue cycle per 64 pixels scrolling
// one pixel every 64 ms.
func NewRainbowWave() *RainbowWave {
	return &RainbowWave{Len: 64, Speed: 64}
}

// Recalc derives the scroll offset from the frame time.
func (r *RainbowWave) Recalc(now time.Duration) {
	speed := max(r.Speed, 1)
	r.offset = millis(now) / uint16(speed)
}

// Render paints the scrolled hue gradient.
func (r *RainbowWave) Render(m *matrix.Matrix) {
	t := target(m, r.Rect)
	total := t.Dx() * t.Dy()
	if total == 0 {
		return
	}

	off := r.offset
	if r.Reverse {
		off = uint16(total-1) - off
	}
	off += uint16(r.Pos)

	step := 256 / max(r.Len, 1)
	idx := 0
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			hue := uint8(((idx + int(off)) * step) % 256)
			m.Set(x, y, ledcolor.HSV{H: hue, S: 255, V: 255}.RGB())
			idx++
		}
	}
}

// Gradient paints a static grayscale ramp from white down to black over the
// destination rect in row-major order. The per-pixel decrement is 256/total+1
// so the ramp always reaches black before running out of pixels.
type Gradient struct {
	Rect image.Rectangle
}

// NewGradient returns a grayscale ramp layer.
func NewGradient() *Gradient {
	return &Gradient{}
}

// Recalc is a no-op, the ramp is static.
func (g *Gradient) Recalc(time.Duration) {}

// Render paints the ramp, stopping once the brightness hits bottom.
func (g *Gradient) Render(m *matrix.Matrix) {
	t := target(m, g.Rect)
	total := t.Dx() * t.Dy()
	if total == 0 {
		return
	}

	dec := uint8(256/total + 1)
	brightness := int16(255)
	idx := 0
loop:
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			if idx < total-1 {
				v := uint8(max(brightness, 0))
				m.Set(x, y, ledcolor.NewRGB(v, v, v))
				brightness -= int16(dec)
				if brightness < 0 {
					break loop
				}
			}
			idx++
		}
	}
}
