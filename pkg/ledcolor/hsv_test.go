package ledcolor

import "testing"

func TestHSVToRGB_ExactVectors(t *testing.T) {
	testCases := []struct {
		name    string
		h, s, v uint8
		r, g, b uint8
	}{
		{"red at hue 0", 0, 255, 255, 255, 0, 0},
		{"region 0 midpoint", 21, 255, 255, 255, 126, 0},
		{"region 1 start", 43, 255, 255, 254, 255, 0},
		{"region 1 end", 85, 255, 255, 3, 255, 0},
		{"green at region 2 start", 86, 255, 255, 0, 255, 0},
		{"region 3 start", 129, 255, 255, 0, 254, 255},
		{"blue at region 4 start", 172, 255, 255, 0, 0, 255},
		{"region 5 start", 215, 255, 255, 255, 0, 254},
		{"hue ceiling", 255, 255, 255, 255, 0, 15},
		{"mid-everything regression", 128, 128, 128, 63, 128, 127},
		{"black", 77, 200, 0, 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := HSVToRGB(tc.h, tc.s, tc.v)
			if r != tc.r || g != tc.g || b != tc.b {
				t.Errorf("HSVToRGB(%d, %d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tc.h, tc.s, tc.v, r, g, b, tc.r, tc.g, tc.b)
			}
		})
	}
}

func TestHSVToRGB_ZeroValue(t *testing.T) {
	for h := 0; h < 256; h++ {
		for s := 0; s < 256; s++ {
			r, g, b := HSVToRGB(uint8(h), uint8(s), 0)
			if r != 0 || g != 0 || b != 0 {
				t.Fatalf("HSVToRGB(%d, %d, 0) = (%d, %d, %d), want (0, 0, 0)", h, s, r, g, b)
			}
		}
	}
}

func TestHSVToRGB_ZeroSaturation(t *testing.T) {
	// With saturation 0 the p/q/t levels all collapse to (v*255)>>8 while the
	// region's value slot passes v through raw, so the channels agree within
	// one step and the lower two sit exactly on the >>8 floor.
	for h := 0; h < 256; h++ {
		for v := 0; v < 256; v++ {
			r, g, b := HSVToRGB(uint8(h), 0, uint8(v))

			floor := uint8((uint16(v) * 255) >> 8)
			lo, hi := minMax3(r, g, b)
			if lo != floor {
				t.Fatalf("HSVToRGB(%d, 0, %d): min channel = %d, want %d", h, v, lo, floor)
			}
			if hi != uint8(v) {
				t.Fatalf("HSVToRGB(%d, 0, %d): max channel = %d, want %d", h, v, hi, v)
			}
			if hi-lo > 1 {
				t.Fatalf("HSVToRGB(%d, 0, %d) = (%d, %d, %d): channel spread %d exceeds 1", h, v, r, g, b, hi-lo)
			}
		}
	}
}

func TestHSVToRGB_Continuity(t *testing.T) {
	// One hue step scales the region remainder by 6, which after the two >>8
	// truncations moves any channel by at most 6. The crossings at 43, 86,
	// 129, 172 and 215 must stay inside the same bound.
	const maxJump = 6

	levels := []uint8{1, 64, 128, 200, 255}
	for _, s := range levels {
		for _, v := range levels {
			pr, pg, pb := HSVToRGB(0, s, v)
			for h := 1; h < 256; h++ {
				r, g, b := HSVToRGB(uint8(h), s, v)
				if absDiff(r, pr) > maxJump || absDiff(g, pg) > maxJump || absDiff(b, pb) > maxJump {
					t.Fatalf("HSVToRGB(%d, %d, %d) = (%d, %d, %d) jumped from (%d, %d, %d) at previous hue",
						h, s, v, r, g, b, pr, pg, pb)
				}
				pr, pg, pb = r, g, b
			}
		}
	}
}

func TestHSVToRGB_Region5Default(t *testing.T) {
	// Hue 255 divides to region 5 and must land on the magenta-to-red row of
	// the mapping with remainder base 255-5*43 = 40.
	for s := 0; s < 256; s++ {
		for v := 0; v < 256; v++ {
			r, g, b := HSVToRGB(255, uint8(s), uint8(v))

			const remainder = 40 * 6
			p := uint8((uint16(v) * uint16(255-s)) >> 8)
			q := uint8((uint16(v) * (255 - ((uint16(s) * remainder) >> 8))) >> 8)
			if r != uint8(v) || g != p || b != q {
				t.Fatalf("HSVToRGB(255, %d, %d) = (%d, %d, %d), want region 5 mapping (%d, %d, %d)",
					s, v, r, g, b, v, p, q)
			}
		}
	}

	// Hue does not wrap: 255 is not an alias for 0.
	r0, g0, b0 := HSVToRGB(0, 255, 255)
	r5, g5, b5 := HSVToRGB(255, 255, 255)
	if r0 == r5 && g0 == g5 && b0 == b5 {
		t.Error("HSVToRGB(255, 255, 255) must not equal HSVToRGB(0, 255, 255)")
	}
}

func TestHSV_RGB(t *testing.T) {
	c := HSV{H: 128, S: 128, V: 128}.RGB()
	want := RGBA{A: 255, R: 63, G: 128, B: 127}
	if c != want {
		t.Errorf("HSV{128, 128, 128}.RGB() = %+v, want %+v", c, want)
	}
}

func minMax3(a, b, c uint8) (uint8, uint8) {
	lo, hi := a, a
	if b < lo {
		lo = b
	}
	if b > hi {
		hi = b
	}
	if c < lo {
		lo = c
	}
	if c > hi {
		hi = c
	}
	return lo, hi
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
