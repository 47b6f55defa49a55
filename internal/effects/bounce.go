package effects

import (
	"image"
	"math"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
	"github.com/alphamatrix/ledgrid/pkg/ledmath"
)

// BouncingPixel moves a single pixel inside the rect with a unit velocity
// vector, reflecting off the edges with a small random deflection so the
// path never settles into a loop. Position and velocity run in Q16.16 so the
// motion stays smooth at low speeds.
//
// Rect must be set to a non-empty rectangle: the start position is derived
// from it before the first render.
type BouncingPixel struct {
	Color ledcolor.RGBA

	// Smooth renders the pixel with a 4-tap subpixel splat.
	Smooth bool

	// Speed scales the step rate; 1 steps every 50 ms. Negative values
	// freeze the effect.
	Speed ledmath.FP16

	Rand ledmath.Rand
	Rect image.Rectangle

	posX, posY ledmath.FP32
	velX, velY ledmath.FP32
	lastTick   uint16
	started    bool
}

// Base step interval in milliseconds at speed 1.
const bounceTickMS = 50

// Q16.16 distance traveled per step.
var bounceStep = ledmath.FP32FromFloat(0.3)

// NewBouncingPixel returns a white pixel starting at the rect center with a
// random heading.
func NewBouncingPixel(seed uint16, rect image.Rectangle) *BouncingPixel {
	return &BouncingPixel{
		Color:  ledcolor.White,
		Smooth: true,
		Speed:  ledmath.FP16One,
		Rand:   ledmath.NewRand(seed),
		Rect:   rect,
	}
}

// Recalc advances the pixel for every step interval that elapsed since the
// previous frame.
func (b *BouncingPixel) Recalc(now time.Duration) {
	if b.Rect.Empty() {
		return
	}
	ms := millis(now)
	if !b.started {
		b.start(ms)
		return
	}
	if b.Speed.Raw() <= 0 {
		return
	}

	interval := ledmath.FP32FromInt(bounceTickMS).Div(b.Speed.FP32()).Round()
	if interval < 1 {
		interval = 1
	}
	step := uint16(min(interval, math.MaxUint16))

	// Catch up one step at a time so collisions are not tunneled through
	// after a long gap between frames.
	for ms-b.lastTick >= step {
		b.lastTick += step
		b.advance()
	}
}

// Render draws the pixel if it is inside the visible rect.
func (b *BouncingPixel) Render(m *matrix.Matrix) {
	if !b.started {
		return
	}
	t := b.Rect.Intersect(m.Bounds())
	px, py := b.posX.Round(), b.posY.Round()
	if !image.Pt(px, py).In(t) {
		return
	}
	if b.Smooth {
		m.SetFP4(b.posX.FP16(), b.posY.FP16(), b.Color)
	} else {
		m.Set(px, py, b.Color)
	}
}

// start places the pixel at the rect center with a uniformly random heading.
func (b *BouncingPixel) start(ms uint16) {
	half := ledmath.FP32Half
	b.posX = ledmath.FP32FromInt(b.Rect.Min.X).Add(ledmath.FP32FromInt(b.Rect.Dx() - 1).Mul(half))
	b.posY = ledmath.FP32FromInt(b.Rect.Min.Y).Add(ledmath.FP32FromInt(b.Rect.Dy() - 1).Mul(half))

	angle := ledmath.FP32FromInt(int(b.Rand.Uint8())).
		Div(ledmath.FP32FromInt(256)).
		Mul(ledmath.FP32TwoPi)
	b.velX = ledmath.FP32Cos(angle)
	b.velY = ledmath.FP32Sin(angle)
	b.normalize()

	b.lastTick = ms
	b.started = true
}

// advance moves one step and reflects off any edge that was crossed.
func (b *BouncingPixel) advance() {
	b.posX = b.posX.Add(b.velX.Mul(bounceStep))
	b.posY = b.posY.Add(b.velY.Mul(bounceStep))

	minX := ledmath.FP32FromInt(b.Rect.Min.X)
	maxX := ledmath.FP32FromInt(b.Rect.Max.X - 1)
	minY := ledmath.FP32FromInt(b.Rect.Min.Y)
	maxY := ledmath.FP32FromInt(b.Rect.Max.Y - 1)

	bounced := false
	if b.posX.Less(minX) {
		b.posX = minX
		b.velX = b.velX.Neg()
		bounced = true
	} else if maxX.Less(b.posX) {
		b.posX = maxX
		b.velX = b.velX.Neg()
		bounced = true
	}
	if b.posY.Less(minY) {
		b.posY = minY
		b.velY = b.velY.Neg()
		bounced = true
	} else if maxY.Less(b.posY) {
		b.posY = maxY
		b.velY = b.velY.Neg()
		bounced = true
	}
	if bounced {
		b.deflect()
	}
}

// deflect rotates the velocity by a random 15..30 degree kick in either
// direction and renormalizes it.
func (b *BouncingPixel) deflect() {
	deg := int(b.Rand.Range8(15, 30))
	if b.Rand.Uint8()&1 == 0 {
		deg = -deg
	}
	rad := ledmath.FP32FromInt(deg).Mul(ledmath.FP32Pi).Div(ledmath.FP32FromInt(180))
	sin := ledmath.FP32Sin(rad)
	cos := ledmath.FP32Cos(rad)

	vx := b.velX.Mul(cos).Sub(b.velY.Mul(sin))
	vy := b.velX.Mul(sin).Add(b.velY.Mul(cos))
	b.velX, b.velY = vx, vy
	b.normalize()
}

// normalize rescales the velocity to unit length, falling back to a
// horizontal unit vector when it degenerates to zero.
func (b *BouncingPixel) normalize() {
	magSq := b.velX.Mul(b.velX).Add(b.velY.Mul(b.velY))
	mag := ledmath.FP32FromFloat(math.Sqrt(magSq.Float()))
	if mag.Raw() == 0 {
		b.velX = ledmath.FP32One
		b.velY = ledmath.FP32{}
		return
	}
	b.velX = b.velX.Div(mag)
	b.velY = b.velY.Div(mag)
}
