package effects

import (
	"image"
	"testing"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

func frame(t *testing.T, e Effect, now time.Duration, w, h int) *matrix.Matrix {
	t.Helper()
	m := matrix.New(w, h)
	e.Recalc(now)
	e.Render(m)
	return m
}

func TestManager_Frame(t *testing.T) {
	g := NewManager()
	g.Add(NewFill(ledcolor.Red))
	g.Add(NewFill(ledcolor.Blue))

	m := matrix.New(4, 4)
	g.Frame(0, m)

	// Later effects draw over earlier ones.
	if got := m.At(0, 0); got != ledcolor.Blue {
		t.Errorf("Stacked fills = %+v, want blue on top", got)
	}

	// ClearEachFrame wipes the previous frame before rendering.
	g.Clear()
	g.Add(NewFill(ledcolor.NewARGB(128, 0, 255, 0)))
	g.Frame(time.Second, m)
	if got := m.At(0, 0); got.B != 0 {
		t.Errorf("Frame after clear kept blue: %+v", got)
	}

	g.ClearEachFrame = false
	before := m.At(0, 0)
	g.Frame(2*time.Second, m)
	if got := m.At(0, 0); got == before {
		t.Errorf("Without clear the translucent fill should accumulate, still %+v", got)
	}
}

func TestManager_AddNil(t *testing.T) {
	g := NewManager()
	g.Add(nil)
	if g.Len() != 0 {
		t.Errorf("Len() = %d after adding nil, want 0", g.Len())
	}
}

func TestFill_Rect(t *testing.T) {
	f := NewFill(ledcolor.Red)
	f.Rect = image.Rect(1, 1, 3, 3)

	m := frame(t, f, 0, 4, 4)
	if got := m.At(1, 1); got != ledcolor.Red {
		t.Errorf("Inside rect = %+v, want red", got)
	}
	if got := m.At(0, 0); got != ledcolor.Transparent {
		t.Errorf("Outside rect = %+v, want untouched", got)
	}
}

func TestPalette_HueSweep(t *testing.T) {
	m := frame(t, NewPalette(), 0, 16, 16)

	if got, want := m.At(0, 0), (ledcolor.HSV{H: 0, S: 255, V: 255}).RGB(); got != want {
		t.Errorf("Pixel 0 = %+v, want %+v", got, want)
	}
	// Pixel 43 sits on the first region boundary.
	if got, want := m.At(11, 2), (ledcolor.HSV{H: 43, S: 255, V: 255}).RGB(); got != want {
		t.Errorf("Pixel 43 = %+v, want %+v", got, want)
	}
}

func TestPalette_Wide(t *testing.T) {
	p := NewPalette()
	p.Wide = 4
	m := frame(t, p, 0, 16, 1)

	if m.At(0, 0) != m.At(3, 0) {
		t.Error("Pixels within one wide block should share a hue")
	}
	if m.At(0, 0) == m.At(4, 0) {
		t.Error("Adjacent wide blocks should differ")
	}
}

func TestRainbowWave_Scroll(t *testing.T) {
	w := NewRainbowWave()
	m0 := frame(t, w, 0, 16, 1)

	// One speed interval later the pattern has shifted by one pixel.
	m1 := frame(t, w, 64*time.Millisecond, 16, 1)
	if got, want := m0.At(1, 0), m1.At(0, 0); got != want {
		t.Errorf("Shifted pixel = %+v, want %+v", want, got)
	}
}

func TestRainbowWave_Reverse(t *testing.T) {
	fwd := NewRainbowWave()
	rev := NewRainbowWave()
	rev.Reverse = true

	mf := frame(t, fwd, 64*time.Millisecond, 16, 1)
	mr := frame(t, rev, 64*time.Millisecond, 16, 1)
	if mf.At(0, 0) == mr.At(0, 0) {
		t.Error("Reverse wave should differ from forward wave")
	}
}

func TestGradient_Ramp(t *testing.T) {
	m := frame(t, NewGradient(), 0, 16, 16)

	if got := m.At(0, 0); got != ledcolor.White {
		t.Errorf("Ramp start = %+v, want white", got)
	}
	// 256 pixels, decrement 2 per pixel.
	if got := m.At(1, 0); got != ledcolor.NewRGB(253, 253, 253) {
		t.Errorf("Second pixel = %+v, want 253 gray", got)
	}
	if got := m.At(15, 15); got != ledcolor.Transparent {
		t.Errorf("Ramp tail = %+v, want untouched after hitting black", got)
	}
}

func TestWhiteNoise(t *testing.T) {
	n := NewWhiteNoise(42)
	m := frame(t, n, 0, 8, 8)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := m.At(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("Noise at (%d,%d) not gray: %+v", x, y, c)
			}
			if c.R > n.Level {
				t.Fatalf("Noise at (%d,%d) = %d above level %d", x, y, c.R, n.Level)
			}
		}
	}

	// Same seed renders the same frame.
	again := frame(t, NewWhiteNoise(42), 0, 8, 8)
	for i, p := range m.Pixels() {
		if again.Pixels()[i] != p {
			t.Fatalf("Seeded noise diverged at pixel %d", i)
		}
	}
}

func TestColorRandDrop_StableWithinFrame(t *testing.T) {
	d := NewColorRandDrop(7)
	d.Recalc(0)

	a := matrix.New(8, 8)
	b := matrix.New(8, 8)
	d.Render(a)
	d.Render(b)
	for i, p := range a.Pixels() {
		if b.Pixels()[i] != p {
			t.Fatalf("Pattern changed between renders of one frame at pixel %d", i)
		}
	}

	lit := 0
	for _, p := range a.Pixels() {
		if p != ledcolor.Transparent {
			lit++
		}
	}
	if lit == 0 || lit == 64 {
		t.Errorf("Lit %d of 64 pixels, want a partial pattern", lit)
	}
}

func TestSinusWave_Columns(t *testing.T) {
	m := frame(t, NewSinusWave(), 0, 8, 8)

	for x := 0; x < 8; x++ {
		for y := 1; y < 8; y++ {
			if m.At(x, y) != m.At(x, 0) {
				t.Fatalf("Column %d not uniform at row %d", x, y)
			}
		}
	}

	uniform := true
	for x := 1; x < 8; x++ {
		if m.At(x, 0) != m.At(0, 0) {
			uniform = false
		}
	}
	if uniform {
		t.Error("All columns equal, wave has no spatial variation")
	}
}

func TestExplodedSinusNoise(t *testing.T) {
	a := frame(t, NewExplodedSinusNoise(), 0, 8, 8)
	b := frame(t, NewExplodedSinusNoise(), 0, 8, 8)
	for i, p := range a.Pixels() {
		if b.Pixels()[i] != p {
			t.Fatalf("Shimmer not deterministic at pixel %d", i)
		}
	}

	later := frame(t, NewExplodedSinusNoise(), 100*time.Millisecond, 8, 8)
	same := true
	for i, p := range a.Pixels() {
		if later.Pixels()[i] != p {
			same = false
			break
		}
	}
	if same {
		t.Error("Shimmer did not animate over 100ms")
	}
}

func TestGradientWaves(t *testing.T) {
	a := frame(t, NewGradientWaves(), time.Second, 8, 8)
	b := frame(t, NewGradientWaves(), time.Second, 8, 8)
	for i, p := range a.Pixels() {
		if !p.Opaque() {
			t.Fatalf("Wave pixel %d not opaque: %+v", i, p)
		}
		if b.Pixels()[i] != p {
			t.Fatalf("Waves not deterministic at pixel %d", i)
		}
	}
}

func TestPlasma(t *testing.T) {
	a := frame(t, NewPlasma(), time.Second, 8, 8)
	later := frame(t, NewPlasma(), 2*time.Second, 8, 8)

	same := true
	for i, p := range a.Pixels() {
		if !p.Opaque() {
			t.Fatalf("Plasma pixel %d not opaque: %+v", i, p)
		}
		if later.Pixels()[i] != p {
			same = false
		}
	}
	if same {
		t.Error("Plasma did not animate over one second")
	}
}
