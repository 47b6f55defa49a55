package effects

import (
	"image"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
	"github.com/alphamatrix/ledgrid/pkg/ledmath"
)

// WhiteNoise fills the destination rect with uncorrelated gray flicker, one
// fresh random value per pixel per frame.
type WhiteNoise struct {
	// Level caps the brightness of a noise pixel.
	Level uint8

	Rand ledmath.Rand
	Rect image.Rectangle
}

// NewWhiteNoise returns a dim noise layer with brightness up to 8.
func NewWhiteNoise(seed uint16) *WhiteNoise {
	return &WhiteNoise{Level: 8, Rand: ledmath.NewRand(seed)}
}

// Recalc is a no-op, the generator advances during rendering.
func (w *WhiteNoise) Recalc(time.Duration) {}

// Render draws one frame of flicker.
func (w *WhiteNoise) Render(m *matrix.Matrix) {
	t := target(m, w.Rect)
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			v := w.Rand.Range8(0, w.Level)
			m.Set(x, y, ledcolor.NewRGB(v, v, v))
		}
	}
}

// ColorRandDrop lights a random subset of the destination rect each frame.
// Recalc draws one seed per frame and Render replays a generator from that
// seed, so the pattern is stable within a frame no matter how often it is
// drawn, but reshuffles every frame.
type ColorRandDrop struct {
	// Level is the brightness of a lit pixel.
	Level uint8

	// Percent sets the lit fraction: a pixel lights when a random byte is
	// at or below it, so 127 lights about half the rect.
	Percent uint8

	Rand ledmath.Rand
	Rect image.Rectangle

	frameSeed uint8
}

// NewColorRandDrop returns a drop layer lighting about half the rect at full
// brightness.
func NewColorRandDrop(seed uint16) *ColorRandDrop {
	return &ColorRandDrop{Level: 255, Percent: 127, Rand: ledmath.NewRand(seed)}
}

// Recalc draws the per-frame pattern seed.
func (d *ColorRandDrop) Recalc(time.Duration) {
	d.frameSeed = d.Rand.Uint8()
}

// Render replays the frame pattern from the frame seed.
func (d *ColorRandDrop) Render(m *matrix.Matrix) {
	t := target(m, d.Rect)
	pattern := ledmath.NewRand(uint16(d.frameSeed))
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			if pattern.Uint8() <= d.Percent {
				m.Set(x, y, ledcolor.NewRGB(d.Level, d.Level, d.Level))
			}
		}
	}
}

// ExplodedSinusNoise pulses every pixel on its own sine phase. The phase is
// derived by bit-mixing the pixel index, so neighbors get unrelated phases
// and the rect shimmers instead of waving.
type ExplodedSinusNoise struct {
	// Pos shifts all phases by a constant.
	Pos uint8

	// Speed is the interval in milliseconds per phase step. Values below 1
	// are treated as 1.
	Speed int

	Rect image.Rectangle

	offset uint8
}

// NewExplodedSinusNoise returns a shimmer layer advancing one phase step
// every 4 ms.
func NewExplodedSinusNoise() *ExplodedSinusNoise {
	return &ExplodedSinusNoise{Speed: 4}
}

// Recalc derives the common phase offset from the frame time.
func (e *ExplodedSinusNoise) Recalc(now time.Duration) {
	speed := max(e.Speed, 1)
	e.offset = e.Pos + uint8(millis(now)/uint16(speed))
}

// Render draws the per-pixel pulse.
func (e *ExplodedSinusNoise) Render(m *matrix.Matrix) {
	t := target(m, e.Rect)
	w := m.Width()
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			mixed := ledmath.Shuffle32(uint32(y*w + x))
			v := ledmath.SinF8(uint8(mixed*8) + e.offset)
			m.Set(x, y, ledcolor.NewRGB(v, v, v))
		}
	}
}
