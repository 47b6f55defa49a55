package effects

import (
	"image"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
	"github.com/alphamatrix/ledgrid/pkg/ledmath"
)

const (
	// Flakes spawn this many rows above the top edge so they drift in
	// rather than pop in.
	snowSpawnAbove = 5

	// The pile is compacted after this many landings.
	snowCompactEvery = 10

	// Base tick interval in milliseconds at speed 1.
	snowTickMS = 50
)

// Snowfall drops flakes from above the rect into a growing pile. Landed
// flakes accumulate in a bit matrix; the pile is compacted periodically so
// overhangs slide down and sideways, and once it covers RestartFillPercent
// of the rect it melts away row by row.
//
// Rect must be set to a non-empty rectangle: the pile state is sized from it
// before the first render, so it cannot default to the whole matrix.
type Snowfall struct {
	// Color of flakes and pile.
	Color ledcolor.RGBA

	// Count is the number of concurrently falling flakes.
	Count int

	// RestartFillPercent is the pile coverage, in percent of the rect
	// area, that triggers the melt.
	RestartFillPercent uint8

	// Smooth renders falling flakes with subpixel antialiasing.
	Smooth bool

	// Speed scales the tick rate; 1 steps every 50 ms. Values at or below
	// 0 freeze the effect.
	Speed ledmath.FP16

	Rand ledmath.Rand
	Rect image.Rectangle

	flakes    []snowflake
	pile      *matrix.BitMatrix
	filled    int
	landings  int
	slideLeft bool
	melting   bool
	lastTick  uint16
	ticked    bool
}

type snowflake struct {
	x, y ledmath.FP16
	fall ledmath.FP16
	live bool
}

// NewSnowfall returns a white snowfall of four flakes over the given rect,
// melting at 80% coverage.
func NewSnowfall(seed uint16, rect image.Rectangle) *Snowfall {
	return &Snowfall{
		Color:              ledcolor.White,
		Count:              4,
		RestartFillPercent: 80,
		Smooth:             true,
		Speed:              ledmath.FP16One,
		Rand:               ledmath.NewRand(seed),
		Rect:               rect,
	}
}

// Recalc advances the simulation by at most one tick.
func (s *Snowfall) Recalc(now time.Duration) {
	if s.Rect.Empty() || s.Count <= 0 {
		return
	}
	s.ensureState()

	speed := s.Speed.Float()
	if speed <= 0 {
		return
	}
	step := uint16(snowTickMS / speed)
	if step == 0 {
		step = 1
	}

	ms := millis(now)
	if s.ticked && ms-s.lastTick < step {
		return
	}
	s.lastTick = ms
	s.ticked = true

	if s.melting {
		s.meltTick()
		return
	}

	threshold := s.Rect.Dx() * s.Rect.Dy() * int(s.RestartFillPercent) / 100
	if s.filled >= threshold && threshold > 0 {
		s.melting = true
		return
	}

	for i := range s.flakes {
		f := &s.flakes[i]
		if !f.live {
			s.spawn(f)
			continue
		}
		// Flakes above the rect descend a full row per tick until they
		// enter the visible area.
		if f.y.Raw() < 0 {
			f.y = f.y.Add(ledmath.FP16One)
			continue
		}
		next := f.y.Add(f.fall)
		if s.pile.Get(f.x.Round(), next.Round()) {
			s.land(f)
			continue
		}
		f.y = next
	}
}

// Render draws the pile and the falling flakes.
func (s *Snowfall) Render(m *matrix.Matrix) {
	if s.pile == nil {
		return
	}
	t := s.Rect.Intersect(m.Bounds())
	for y := t.Min.Y; y < t.Max.Y; y++ {
		for x := t.Min.X; x < t.Max.X; x++ {
			if s.pile.Get(x-s.Rect.Min.X, y-s.Rect.Min.Y) {
				m.Set(x, y, s.Color)
			}
		}
	}

	offX := ledmath.FP16FromInt(s.Rect.Min.X)
	offY := ledmath.FP16FromInt(s.Rect.Min.Y)
	for i := range s.flakes {
		f := &s.flakes[i]
		if !f.live || f.y.Raw() < 0 {
			continue
		}
		gx := f.x.Add(offX)
		gy := f.y.Add(offY)
		if !image.Pt(gx.Round(), gy.Round()).In(t) {
			continue
		}
		if s.Smooth {
			m.SetFP2(gx, gy, s.Color)
		} else {
			m.Set(gx.Round(), gy.Round(), s.Color)
		}
	}
}

func (s *Snowfall) ensureState() {
	w, h := s.Rect.Dx(), s.Rect.Dy()
	if s.pile == nil || s.pile.Width() != w || s.pile.Height() != h {
		s.pile = matrix.NewBitMatrix(w, h)
		// Out-of-bounds cells read as occupied, which gives the pile a
		// floor and walls without special-casing the edges.
		s.pile.OutOfBoundsValue = true
		s.filled = 0
		s.melting = false
	}
	if len(s.flakes) != s.Count {
		s.flakes = make([]snowflake, s.Count)
	}
}

// spawn resets a flake to a random column above the rect with a jittered
// fall rate between half and one and a half pixels per tick.
func (s *Snowfall) spawn(f *snowflake) {
	w := min(s.Rect.Dx(), 255)
	f.x = ledmath.FP16FromInt(int(s.Rand.Intn8(uint8(w))))
	f.y = ledmath.FP16FromInt(-1 - int(s.Rand.Intn8(snowSpawnAbove)))
	f.fall = ledmath.FP16FromRaw(int16(s.Rand.Range8(8, 24)))
	f.live = true
}

// land fixes a flake into the pile at its current cell and respawns it.
func (s *Snowfall) land(f *snowflake) {
	x, y := f.x.Round(), f.y.Round()
	if !s.pile.Get(x, y) {
		s.pile.Set(x, y, true)
		s.filled++
	}
	s.spawn(f)

	s.landings++
	if s.landings >= snowCompactEvery {
		s.landings = 0
		s.compact()
	}
}

// meltTick shifts the pile down one row and ends the melt once it is empty.
func (s *Snowfall) meltTick() {
	s.pile.ShiftDown(1)
	s.filled = 0
	for y := 0; y < s.pile.Height(); y++ {
		s.filled += s.pile.CountRow(y)
	}
	if s.filled == 0 {
		s.melting = false
	}
}

// compact lets overhanging snow settle: every set cell tries to move
// straight down, then diagonally, alternating which side is tried first so
// the pile does not lean.
func (s *Snowfall) compact() {
	for y := s.pile.Height() - 1; y >= 0; y-- {
		for x := s.pile.Width() - 1; x >= 0; x-- {
			if !s.pile.Get(x, y) {
				continue
			}
			if s.slide(x, y, 0) {
				continue
			}
			if s.slideLeft {
				_ = s.slide(x, y, -1) || s.slide(x, y, 1)
			} else {
				_ = s.slide(x, y, 1) || s.slide(x, y, -1)
			}
		}
	}
}

// slide moves the cell at (x, y) to (x+dx, y+1) if that cell is free.
// Out-of-bounds targets read as occupied, so nothing escapes the rect.
func (s *Snowfall) slide(x, y, dx int) bool {
	if s.pile.Get(x+dx, y+1) {
		return false
	}
	s.pile.Set(x, y, false)
	s.pile.Set(x+dx, y+1, true)
	if dx != 0 {
		s.slideLeft = !s.slideLeft
	}
	return true
}
