package effects

import (
	"image"
	"math"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
	"github.com/alphamatrix/ledgrid/pkg/ledmath"
)

// SinusWave sweeps a sine brightness wave over the columns of the
// destination rect. Each column carries one phase step, scaled so Len
// columns span the full wave, and the whole wave scrolls one step every
// Speed milliseconds.
type SinusWave struct {
	// Color is the wave color at the crest; the trough fades to black.
	Color ledcolor.RGBA

	// Len is the number of columns one full wave is stretched over.
	// Values below 1 are treated as 1.
	Len int

	// Pos shifts the wave by a constant phase offset.
	Pos uint8

	// Speed is the scroll interval in milliseconds per step. Values below
	// 1 are treated as 1.
	Speed int

	// Reverse flips the scroll direction.
	Reverse bool

	Rect image.Rectangle

	offset uint8
}

// NewSinusWave returns a white wave spanning 8 columns, scrolling one step
// every 64 ms.
func NewSinusWave() *SinusWave {
	return &SinusWave{Color: ledcolor.White, Len: 8, Speed: 64}
}

// Recalc derives the scroll offset from the frame time.
func (s *SinusWave) Recalc(now time.Duration) {
	speed := max(s.Speed, 1)
	s.offset = uint8(millis(now) / uint16(speed))
}

// Render draws the brightness wave.
func (s *SinusWave) Render(m *matrix.Matrix) {
	t := target(m, s.Rect)
	cols := t.Dx()
	if cols == 0 {
		return
	}

	off := s.offset
	if s.Reverse {
		off = uint8(cols-1) - off
	}
	off += s.Pos

	step := 256 / max(s.Len, 1)
	for x := t.Min.X; x < t.Max.X; x++ {
		phase := uint8((x - t.Min.X + int(off)) * step)
		v := ledmath.SinF8(phase)
		c := ledcolor.RGBA{
			A: s.Color.A,
			R: ledcolor.Mul8(s.Color.R, v),
			G: ledcolor.Mul8(s.Color.G, v),
			B: ledcolor.Mul8(s.Color.B, v),
		}
		for y := t.Min.Y; y < t.Max.Y; y++ {
			m.Set(x, y, c)
		}
	}
}

// GradientWaves drifts three phase-shifted color waves across the rect, one
// per channel. This one runs on float math; the byte-range effects cover the
// retro look, this covers the smooth one.
type GradientWaves struct {
	// Speed scales the time axis. 1 is the base rate.
	Speed float64

	// Scale stretches the spatial axes; larger values give wider waves.
	// Values at or below 0 are treated as 1.
	Scale float64

	Rect image.Rectangle

	now time.Duration
}

// NewGradientWaves returns a wave layer at base speed and scale.
func NewGradientWaves() *GradientWaves {
	return &GradientWaves{Speed: 1, Scale: 1}
}

// Recalc records the frame time.
func (g *GradientWaves) Recalc(now time.Duration) {
	g.now = now
}

// Render evaluates the three waves per pixel.
func (g *GradientWaves) Render(m *matrix.Matrix) {
	rect := target(m, g.Rect)
	t := g.now.Seconds() * g.Speed
	inv := 1.0
	if g.Scale > 0 {
		inv = 1 / g.Scale
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		yf := float64(y-rect.Min.Y) * 0.4 * inv
		for x := rect.Min.X; x < rect.Max.X; x++ {
			xf := float64(x-rect.Min.X) * 0.4 * inv
			r := wave8(t*0.8 + xf)
			gg := wave8(t + yf)
			b := wave8(t*0.6 + xf + yf*0.5)
			m.Set(x, y, ledcolor.NewRGB(r, gg, b))
		}
	}
}

// wave8 maps sin(v) from [-1, 1] to a 0..255 channel value.
func wave8(v float64) uint8 {
	return uint8((math.Sin(v)*0.5 + 0.5) * 255)
}

// Plasma renders the classic interference plasma: three sines over x, y and
// the diagonal, summed and folded into a red-green ramp with a slow blue
// swell on top.
type Plasma struct {
	// Speed scales the time axis. 1 is the base rate.
	Speed float64

	// Scale stretches the spatial axes. Values at or below 0 are treated
	// as 1.
	Scale float64

	Rect image.Rectangle

	now time.Duration
}

// NewPlasma returns a plasma layer at base speed and scale.
func NewPlasma() *Plasma {
	return &Plasma{Speed: 1, Scale: 1}
}

// Recalc records the frame time.
func (p *Plasma) Recalc(now time.Duration) {
	p.now = now
}

// Render evaluates the plasma field per pixel.
func (p *Plasma) Render(m *matrix.Matrix) {
	rect := target(m, p.Rect)
	t := p.now.Seconds() * 2.5 * p.Speed
	inv := 1.0
	if p.Scale > 0 {
		inv = 1 / p.Scale
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		yf := float64(y-rect.Min.Y) * inv
		for x := rect.Min.X; x < rect.Max.X; x++ {
			xf := float64(x-rect.Min.X) * inv

			v := math.Sin(xf*0.35+t) + math.Sin(yf*0.35-t) + math.Sin((xf+yf)*0.25+t*0.5)
			norm := (v + 3) / 6

			r := uint8(norm * 255)
			g := uint8((1 - norm) * 255)
			b := uint8((0.5 + 0.5*math.Sin(t+xf*0.1)) * 255)
			m.Set(x, y, ledcolor.NewRGB(r, g, b))
		}
	}
}
