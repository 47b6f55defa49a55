// Package ledmath provides the byte-range and fixed-point arithmetic the
// effect renderers are built on. Everything here is deterministic and
// allocation free so a frame renders identically for a given seed and clock.
package ledmath

import "math"

// b/m16 pairs for the four 16-step sections of a quarter wave.
var sinQuarter = [8]uint8{0, 49, 49, 41, 90, 27, 117, 10}

// QAdd8 adds two bytes, saturating at 255.
func QAdd8(a, b uint8) uint8 {
	t := uint16(a) + uint16(b)
	if t > 255 {
		return 255
	}
	return uint8(t)
}

// QSub8 subtracts b from a, saturating at 0.
func QSub8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

// Blend8 mixes a toward b, with amount 0 keeping a and 255 yielding b.
func Blend8(a, b, amount uint8) uint8 {
	partial := uint16(a) * uint16(255-amount)
	partial += uint16(a)
	partial += uint16(b) * uint16(amount)
	partial += uint16(b)
	return uint8(partial >> 8)
}

// Sin8 returns a piecewise-linear sine of theta, where one period spans 256
// units. The result is offset so 128 is the zero crossing, 255 the peak at
// theta 64 and 1 the trough at theta 192.
func Sin8(theta uint8) uint8 {
	offset := theta
	if theta&0x40 != 0 {
		offset = 255 - offset
	}
	offset &= 0x3F

	secoffset := offset & 0x0F
	if theta&0x40 != 0 {
		secoffset++
	}

	s2 := (offset >> 4) * 2
	b := sinQuarter[s2]
	m16 := sinQuarter[s2+1]
	mx := uint8((uint16(m16) * uint16(secoffset)) >> 4)

	y := int8(mx + b)
	if theta&0x80 != 0 {
		y = -y
	}
	return uint8(y) + 128
}

// SinF8 is the full-precision counterpart of Sin8 used by the smooth wave
// effects. The math stays in float32 so the peak at x 64 lands exactly on
// 255 and the trough at 192 on 0.
func SinF8(x uint8) uint8 {
	s := float32(math.Sin(float64(float32(x) * 3.14159 / 128.0)))
	return uint8((s + 1.0) * 127.5)
}

// Shuffle32 decorrelates a counter into a pseudo-random word (xorshift).
// Note that 0 maps to 0.
func Shuffle32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}
