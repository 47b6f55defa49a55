package ledmath

import "math"

// Two fixed-point layouts cover the effect state: FP16 is signed Q12.4 over
// int16 for pixel coordinates and velocities, FP32 is signed Q16.16 over
// int32 where the extra fraction bits matter. Arithmetic saturates at the
// raw range instead of wrapping, and division by zero yields zero.

const (
	fp16FracBits = 4
	fp16Scale    = 1 << fp16FracBits
	fp16FracMask = fp16Scale - 1

	fp32FracBits = 16
	fp32Scale    = 1 << fp32FracBits
	fp32FracMask = fp32Scale - 1
)

// FP16 is a signed Q12.4 fixed-point value. The zero value is 0.
type FP16 struct {
	raw int16
}

// FP32 is a signed Q16.16 fixed-point value. The zero value is 0.
type FP32 struct {
	raw int32
}

var (
	FP16Half   = FP16FromFloat(0.5)
	FP16One    = FP16FromFloat(1)
	FP16Pi     = FP16FromFloat(math.Pi)
	FP16HalfPi = FP16FromFloat(math.Pi / 2)
	FP16TwoPi  = FP16FromFloat(2 * math.Pi)

	FP32Half   = FP32FromFloat(0.5)
	FP32One    = FP32FromFloat(1)
	FP32Pi     = FP32FromFloat(math.Pi)
	FP32HalfPi = FP32FromFloat(math.Pi / 2)
	FP32TwoPi  = FP32FromFloat(2 * math.Pi)
)

func clampRaw16(v int64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func clampRaw32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// FP16FromRaw wraps a raw Q12.4 value.
func FP16FromRaw(raw int16) FP16 { return FP16{raw: raw} }

// FP16FromInt converts an integer, saturating at the Q12.4 range.
func FP16FromInt(v int) FP16 {
	return FP16{raw: clampRaw16(int64(v) << fp16FracBits)}
}

// FP16FromFloat converts a float, rounding to nearest with ties away from
// zero and saturating at the Q12.4 range.
func FP16FromFloat(v float64) FP16 {
	scaled := v * fp16Scale
	if scaled >= 0 {
		scaled += 0.5
	} else {
		scaled -= 0.5
	}
	if scaled > math.MaxInt16 {
		return FP16{raw: math.MaxInt16}
	}
	if scaled < math.MinInt16 {
		return FP16{raw: math.MinInt16}
	}
	return FP16{raw: int16(scaled)}
}

// Raw returns the underlying Q12.4 value.
func (f FP16) Raw() int16 { return f.raw }

// Float converts to float64.
func (f FP16) Float() float64 { return float64(f.raw) / fp16Scale }

// Add returns f+o, saturating.
func (f FP16) Add(o FP16) FP16 {
	return FP16{raw: clampRaw16(int64(f.raw) + int64(o.raw))}
}

// Sub returns f-o, saturating.
func (f FP16) Sub(o FP16) FP16 {
	return FP16{raw: clampRaw16(int64(f.raw) - int64(o.raw))}
}

// Mul returns f*o, saturating.
func (f FP16) Mul(o FP16) FP16 {
	return FP16{raw: clampRaw16((int64(f.raw) * int64(o.raw)) >> fp16FracBits)}
}

// Div returns f/o, saturating. Division by zero returns 0.
func (f FP16) Div(o FP16) FP16 {
	if o.raw == 0 {
		return FP16{}
	}
	return FP16{raw: clampRaw16((int64(f.raw) << fp16FracBits) / int64(o.raw))}
}

// Neg returns -f. The most negative raw value negates to the most positive.
func (f FP16) Neg() FP16 {
	if f.raw == math.MinInt16 {
		return FP16{raw: math.MaxInt16}
	}
	return FP16{raw: -f.raw}
}

// Abs returns the absolute value, with the same edge handling as Neg.
func (f FP16) Abs() FP16 {
	if f.raw >= 0 {
		return f
	}
	return f.Neg()
}

// Less reports f < o.
func (f FP16) Less(o FP16) bool { return f.raw < o.raw }

// Trunc returns the integer part, truncating toward zero.
func (f FP16) Trunc() int { return int(f.raw / fp16Scale) }

// Floor returns the largest integer not above f.
func (f FP16) Floor() int { return int(f.raw >> fp16FracBits) }

// Ceil returns the smallest integer not below f.
func (f FP16) Ceil() int {
	n := int(f.raw >> fp16FracBits)
	if f.raw&fp16FracMask != 0 {
		n++
	}
	return n
}

// Round returns the nearest integer, ties away from zero.
func (f FP16) Round() int {
	r := int64(f.raw)
	if r >= 0 {
		return int((r + fp16Scale/2) >> fp16FracBits)
	}
	return -int((-r + fp16Scale/2) >> fp16FracBits)
}

// FracAbsRaw returns the fractional part of the absolute value in raw units,
// 0 to 15.
func (f FP16) FracAbsRaw() int16 { return f.Abs().raw & fp16FracMask }

// FracRawSigned returns the fractional part in raw units with the sign of f,
// matching truncation toward zero.
func (f FP16) FracRawSigned() int16 {
	if f.raw < 0 {
		return -f.FracAbsRaw()
	}
	return f.FracAbsRaw()
}

// FP32 widens to Q16.16. The conversion is exact.
func (f FP16) FP32() FP32 {
	return FP32{raw: int32(f.raw) << (fp32FracBits - fp16FracBits)}
}

// FP32FromRaw wraps a raw Q16.16 value.
func FP32FromRaw(raw int32) FP32 { return FP32{raw: raw} }

// FP32FromInt converts an integer, saturating at the Q16.16 range.
func FP32FromInt(v int) FP32 {
	return FP32{raw: clampRaw32(int64(v) << fp32FracBits)}
}

// FP32FromFloat converts a float, rounding to nearest with ties away from
// zero and saturating at the Q16.16 range.
func FP32FromFloat(v float64) FP32 {
	scaled := v * fp32Scale
	if scaled >= 0 {
		scaled += 0.5
	} else {
		scaled -= 0.5
	}
	if scaled > math.MaxInt32 {
		return FP32{raw: math.MaxInt32}
	}
	if scaled < math.MinInt32 {
		return FP32{raw: math.MinInt32}
	}
	return FP32{raw: int32(scaled)}
}

// Raw returns the underlying Q16.16 value.
func (f FP32) Raw() int32 { return f.raw }

// Float converts to float64.
func (f FP32) Float() float64 { return float64(f.raw) / fp32Scale }

// Add returns f+o, saturating.
func (f FP32) Add(o FP32) FP32 {
	return FP32{raw: clampRaw32(int64(f.raw) + int64(o.raw))}
}

// Sub returns f-o, saturating.
func (f FP32) Sub(o FP32) FP32 {
	return FP32{raw: clampRaw32(int64(f.raw) - int64(o.raw))}
}

// Mul returns f*o, saturating.
func (f FP32) Mul(o FP32) FP32 {
	return FP32{raw: clampRaw32((int64(f.raw) * int64(o.raw)) >> fp32FracBits)}
}

// Div returns f/o, saturating. Division by zero returns 0.
func (f FP32) Div(o FP32) FP32 {
	if o.raw == 0 {
		return FP32{}
	}
	return FP32{raw: clampRaw32((int64(f.raw) << fp32FracBits) / int64(o.raw))}
}

// Neg returns -f. The most negative raw value negates to the most positive.
func (f FP32) Neg() FP32 {
	if f.raw == math.MinInt32 {
		return FP32{raw: math.MaxInt32}
	}
	return FP32{raw: -f.raw}
}

// Abs returns the absolute value, with the same edge handling as Neg.
func (f FP32) Abs() FP32 {
	if f.raw >= 0 {
		return f
	}
	return f.Neg()
}

// Less reports f < o.
func (f FP32) Less(o FP32) bool { return f.raw < o.raw }

// Trunc returns the integer part, truncating toward zero.
func (f FP32) Trunc() int { return int(f.raw / fp32Scale) }

// Floor returns the largest integer not above f.
func (f FP32) Floor() int { return int(f.raw >> fp32FracBits) }

// Ceil returns the smallest integer not below f.
func (f FP32) Ceil() int {
	n := int(f.raw >> fp32FracBits)
	if f.raw&fp32FracMask != 0 {
		n++
	}
	return n
}

// Round returns the nearest integer, ties away from zero.
func (f FP32) Round() int {
	r := int64(f.raw)
	if r >= 0 {
		return int((r + fp32Scale/2) >> fp32FracBits)
	}
	return -int((-r + fp32Scale/2) >> fp32FracBits)
}

// FracAbsRaw returns the fractional part of the absolute value in raw units,
// 0 to 65535.
func (f FP32) FracAbsRaw() int32 { return f.Abs().raw & fp32FracMask }

// FracRawSigned returns the fractional part in raw units with the sign of f.
func (f FP32) FracRawSigned() int32 {
	if f.raw < 0 {
		return -f.FracAbsRaw()
	}
	return f.FracAbsRaw()
}

// FP16 narrows to Q12.4, rounding to nearest with ties away from zero and
// saturating at the narrow range.
func (f FP32) FP16() FP16 {
	const shift = fp32FracBits - fp16FracBits
	r := int64(f.raw)
	if r >= 0 {
		r = (r + 1<<(shift-1)) >> shift
	} else {
		r = -((-r + 1<<(shift-1)) >> shift)
	}
	return FP16{raw: clampRaw16(r)}
}

// FP32Sin returns sin(angle) for an angle in radians.
func FP32Sin(angle FP32) FP32 { return FP32FromFloat(math.Sin(angle.Float())) }

// FP32Cos returns cos(angle) for an angle in radians.
func FP32Cos(angle FP32) FP32 { return FP32FromFloat(math.Cos(angle.Float())) }
