package matrix

import (
	"testing"

	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
	"github.com/alphamatrix/ledgrid/pkg/ledmath"
)

// alphaAt collects the stored alpha of every non-clear pixel, keyed by
// coordinates. Splats on an empty matrix store the tap alpha unchanged, so
// this recovers the tap distribution exactly.
func alphaAt(m *Matrix) map[[2]int]uint8 {
	out := make(map[[2]int]uint8)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if c := m.At(x, y); c.A > 0 {
				out[[2]int{x, y}] = c.A
			}
		}
	}
	return out
}

func TestSetFP2_ExactCenter(t *testing.T) {
	m := New(5, 5)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP2(ledmath.FP16FromInt(2), ledmath.FP16FromInt(2), c)

	taps := alphaAt(m)
	if len(taps) != 1 {
		t.Fatalf("Expected a single pixel, got %d: %v", len(taps), taps)
	}
	if got := m.At(2, 2); got != c {
		t.Errorf("Expected full-alpha pixel %+v at center, got %+v", c, got)
	}
}

func TestSetFP2_HalfOffsets(t *testing.T) {
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	testCases := []struct {
		name       string
		x, y       float64
		taps       [2][2]int
		tapsAlphas [2]uint8
	}{
		// A half offset rounds away from the low pixel, so the rounded
		// center takes 127 and the neighbor behind it takes 128.
		{"vertical down", 2.0, 2.5, [2][2]int{{2, 3}, {2, 2}}, [2]uint8{127, 128}},
		{"vertical up", 2.0, 1.5, [2][2]int{{2, 2}, {2, 1}}, [2]uint8{127, 128}},
		{"horizontal", 2.5, 2.0, [2][2]int{{3, 2}, {2, 2}}, [2]uint8{127, 128}},
		{"diagonal", 2.5, 2.5, [2][2]int{{3, 3}, {2, 2}}, [2]uint8{127, 128}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(5, 5)
			m.SetFP2(ledmath.FP16FromFloat(tc.x), ledmath.FP16FromFloat(tc.y), c)

			taps := alphaAt(m)
			if len(taps) != 2 {
				t.Fatalf("Expected exactly two pixels, got %d: %v", len(taps), taps)
			}
			sum := 0
			for i, pos := range tc.taps {
				a, ok := taps[pos]
				if !ok {
					t.Fatalf("Expected a tap at %v, got %v", pos, taps)
				}
				if a != tc.tapsAlphas[i] {
					t.Errorf("Expected alpha %d at %v, got %d", tc.tapsAlphas[i], pos, a)
				}
				sum += int(a)
			}
			if sum != int(c.A) {
				t.Errorf("Expected tap alphas to sum to %d, got %d", c.A, sum)
			}
		})
	}
}

func TestSetFP2_DominantAxis(t *testing.T) {
	// (2.75, 2.25) rounds to center (3, 2); the x fraction dominates, so the
	// single secondary tap sits at (2, 2) and every other neighbor is clear.
	m := New(5, 5)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP2(ledmath.FP16FromFloat(2.75), ledmath.FP16FromFloat(2.25), c)

	taps := alphaAt(m)
	if len(taps) != 2 {
		t.Fatalf("Expected exactly two pixels, got %d: %v", len(taps), taps)
	}
	if a := taps[[2]int{3, 2}]; a != 191 {
		t.Errorf("Expected center alpha 191 at (3,2), got %d", a)
	}
	if a := taps[[2]int{2, 2}]; a != 64 {
		t.Errorf("Expected secondary alpha 64 at (2,2), got %d", a)
	}
}

func TestSetFP2_AlphaConservation(t *testing.T) {
	// Away from the edges the two taps always sum to the source alpha
	// exactly, whatever the subpixel position.
	for _, alpha := range []uint8{255, 201, 128, 33} {
		for rawX := int16(0); rawX < 16; rawX++ {
			for rawY := int16(0); rawY < 16; rawY++ {
				m := New(7, 7)
				x := ledmath.FP16FromInt(3).Add(ledmath.FP16FromRaw(rawX))
				y := ledmath.FP16FromInt(3).Add(ledmath.FP16FromRaw(rawY))
				m.SetFP2(x, y, ledcolor.RGBA{A: alpha, R: 10, G: 20, B: 30})

				sum := 0
				for _, a := range alphaAt(m) {
					sum += int(a)
				}
				if sum != int(alpha) {
					t.Fatalf("Expected total alpha %d at offset (%d,%d)/16, got %d",
						alpha, rawX, rawY, sum)
				}
			}
		}
	}
}

func TestSetFP2_OutOfBounds(t *testing.T) {
	m := New(3, 3)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}

	// (-0.5, 1.5): the center pixel lands at (-1, 2) and is dropped, the
	// diagonal secondary tap lands in bounds at (0, 1).
	m.SetFP2(ledmath.FP16FromFloat(-0.5), ledmath.FP16FromFloat(1.5), c)
	taps := alphaAt(m)
	if len(taps) != 1 {
		t.Fatalf("Expected a single in-bounds tap, got %v", taps)
	}
	if a := taps[[2]int{0, 1}]; a != 128 {
		t.Errorf("Expected alpha 128 at (0,1), got %d", a)
	}

	// Fully outside: nothing is drawn.
	m.Clear()
	m.SetFP2(ledmath.FP16FromFloat(5.5), ledmath.FP16FromFloat(1.5), c)
	if taps := alphaAt(m); len(taps) != 0 {
		t.Errorf("Expected no pixels for a fully out-of-bounds splat, got %v", taps)
	}
}

func TestSetFP4_ExactCenter(t *testing.T) {
	m := New(5, 5)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP4(ledmath.FP16FromInt(2), ledmath.FP16FromInt(2), c)

	taps := alphaAt(m)
	if len(taps) != 1 {
		t.Fatalf("Expected a single pixel, got %d: %v", len(taps), taps)
	}
	if got := m.At(2, 2); got != c {
		t.Errorf("Expected full-alpha pixel %+v at center, got %+v", c, got)
	}
}

func TestSetFP4_HalfOffsetHorizontal(t *testing.T) {
	m := New(5, 5)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP4(ledmath.FP16FromFloat(2.5), ledmath.FP16FromInt(2), c)

	taps := alphaAt(m)
	if len(taps) != 2 {
		t.Fatalf("Expected two pixels, got %d: %v", len(taps), taps)
	}
	if a := taps[[2]int{2, 2}]; a != 128 {
		t.Errorf("Expected alpha 128 at (2,2), got %d", a)
	}
	if a := taps[[2]int{3, 2}]; a != 128 {
		t.Errorf("Expected alpha 128 at (3,2), got %d", a)
	}
}

func TestSetFP4_HalfOffsetDiagonal(t *testing.T) {
	m := New(5, 5)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP4(ledmath.FP16FromFloat(1.5), ledmath.FP16FromFloat(1.5), c)

	taps := alphaAt(m)
	if len(taps) != 4 {
		t.Fatalf("Expected four pixels, got %d: %v", len(taps), taps)
	}
	for _, pos := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if a := taps[pos]; a != 64 {
			t.Errorf("Expected alpha 64 at %v, got %d", pos, a)
		}
	}
}

func TestSetFP4_QuarterOffset(t *testing.T) {
	// fx=4, fy=0 within the cell at (2,2): weights 12*16 and 4*16, so the
	// splat splits 191/64 between the two horizontal cells.
	m := New(5, 5)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP4(ledmath.FP16FromFloat(2.25), ledmath.FP16FromInt(2), c)

	taps := alphaAt(m)
	if len(taps) != 2 {
		t.Fatalf("Expected two pixels, got %d: %v", len(taps), taps)
	}
	if a := taps[[2]int{2, 2}]; a != 191 {
		t.Errorf("Expected alpha 191 at (2,2), got %d", a)
	}
	if a := taps[[2]int{3, 2}]; a != 64 {
		t.Errorf("Expected alpha 64 at (3,2), got %d", a)
	}
}

func TestSetFP4_OutOfBounds(t *testing.T) {
	// (-0.5, 1.5) anchors the cell at (-1, 1): only the two right-hand taps
	// land inside, with a quarter of the alpha each.
	m := New(3, 3)
	c := ledcolor.RGBA{A: 255, R: 100, G: 200, B: 50}
	m.SetFP4(ledmath.FP16FromFloat(-0.5), ledmath.FP16FromFloat(1.5), c)

	taps := alphaAt(m)
	if len(taps) != 2 {
		t.Fatalf("Expected two in-bounds taps, got %v", taps)
	}
	if a := taps[[2]int{0, 1}]; a != 64 {
		t.Errorf("Expected alpha 64 at (0,1), got %d", a)
	}
	if a := taps[[2]int{0, 2}]; a != 64 {
		t.Errorf("Expected alpha 64 at (0,2), got %d", a)
	}
}

func TestSetFP4_AlphaConservation(t *testing.T) {
	// The four tap weights sum to 256, so the distributed alpha matches the
	// source alpha to within the rounding of the individual taps.
	for _, alpha := range []uint8{255, 254, 200, 128, 51} {
		for rawX := int16(0); rawX < 16; rawX++ {
			for rawY := int16(0); rawY < 16; rawY++ {
				m := New(8, 8)
				x := ledmath.FP16FromInt(3).Add(ledmath.FP16FromRaw(rawX))
				y := ledmath.FP16FromInt(3).Add(ledmath.FP16FromRaw(rawY))
				m.SetFP4(x, y, ledcolor.RGBA{A: alpha, R: 10, G: 20, B: 30})

				sum := 0
				for _, a := range alphaAt(m) {
					sum += int(a)
				}
				if diff := sum - int(alpha); diff < -2 || diff > 2 {
					t.Fatalf("Expected total alpha within 2 of %d at offset (%d,%d)/16, got %d",
						alpha, rawX, rawY, sum)
				}
			}
		}
	}
}
