package effects

import (
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// The trail buffer decays once per this many milliseconds, independent of
// the frame rate.
const fadeStepMS = 32

// FadeTrail is a post-pass layer: it keeps its own copy of the frame,
// decays that copy's alpha over time and composites the current frame over
// it. Stacked last on a manager with ClearEachFrame off it turns any moving
// effect into one with an afterglow.
type FadeTrail struct {
	// FadeAlpha controls how slowly trails decay; 255 never decays,
	// 0 leaves no trail.
	FadeAlpha uint8

	buffer   *matrix.Matrix
	now      uint16
	lastFade uint16
	primed   bool
}

// NewFadeTrail returns a trail layer with a medium-length afterglow.
func NewFadeTrail() *FadeTrail {
	return &FadeTrail{FadeAlpha: 224}
}

// Recalc records the frame time; decay happens during rendering where the
// frame dimensions are known.
func (f *FadeTrail) Recalc(now time.Duration) {
	f.now = millis(now)
}

// Render decays the trail buffer for the elapsed time, composites the
// incoming frame over it and writes the result back to both.
func (f *FadeTrail) Render(m *matrix.Matrix) {
	if f.buffer == nil || f.buffer.Width() != m.Width() || f.buffer.Height() != m.Height() {
		f.buffer = matrix.New(m.Width(), m.Height())
		f.primed = false
	}

	if !f.primed {
		f.lastFade = f.now
		f.primed = true
	} else {
		steps := (f.now - f.lastFade) / fadeStepMS
		if steps > 0 {
			// A long stall would otherwise burn thousands of decay
			// rounds; past ~32 the buffer is black anyway.
			steps = min(steps, 32)
			for i := uint16(0); i < steps; i++ {
				f.decay()
			}
			f.lastFade += steps * fadeStepMS
		}
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			composed := ledcolor.SourceOver(f.buffer.At(x, y), m.At(x, y))
			f.buffer.SetRewrite(x, y, composed)
			m.SetRewrite(x, y, composed)
		}
	}
}

// decay runs one decay round over the trail buffer. The per-round
// multiplier is derived from FadeAlpha so that higher values decay slower
// than a linear mapping would.
func (f *FadeTrail) decay() {
	rate := 255 - f.FadeAlpha
	mul := 255 - ledcolor.Mul8(rate, rate)

	pix := f.buffer.Pixels()
	for i, p := range pix {
		if p.A == 0 {
			continue
		}
		if p.A < 4 {
			pix[i] = ledcolor.Transparent
			continue
		}
		// Truncate instead of rounding: the rounded multiply has fixed
		// points where a dim trail stalls above the cutoff forever.
		pix[i].A = uint8(uint16(p.A) * uint16(mul) / 255)
	}
}
