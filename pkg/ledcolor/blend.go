package ledcolor

// Mul8 multiplies two 8-bit values treating each as a fraction of 255,
// rounding to nearest. Mul8(255, x) == x and Mul8(128, 128) == 64.
func Mul8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// div255 divides a premultiplied channel sum by the output alpha, rounding
// to nearest. A zero alpha yields zero.
func div255(p uint16, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	return uint8((uint32(p)*255 + uint32(a)/2) / uint32(a))
}

// blendChannel composites one channel: cs/cd are the source and destination
// channel values, as/ad their straight alphas, invAs = 255-as and aOut the
// already-computed output alpha.
func blendChannel(cs, cd, as, ad, invAs, aOut uint8) uint8 {
	srcP := Mul8(cs, as)
	dstP := Mul8(cd, ad)
	outP := uint16(srcP) + uint16(Mul8(dstP, invAs))
	return div255(outP, aOut)
}

// SourceOver composites src over dst using Porter-Duff source-over with
// straight alpha. An opaque src replaces dst entirely; a fully transparent
// result collapses to transparent black.
func SourceOver(dst, src RGBA) RGBA {
	invAs := 255 - src.A
	aOut := src.A + Mul8(dst.A, invAs)
	if aOut == 0 {
		return Transparent
	}

	return RGBA{
		A: aOut,
		R: blendChannel(src.R, dst.R, src.A, dst.A, invAs, aOut),
		G: blendChannel(src.G, dst.G, src.A, dst.A, invAs, aOut),
		B: blendChannel(src.B, dst.B, src.A, dst.A, invAs, aOut),
	}
}

// SourceOverScaled is SourceOver with the source alpha scaled by
// global/255 first. SourceOverScaled(dst, src, 255) == SourceOver(dst, src).
func SourceOverScaled(dst, src RGBA, global uint8) RGBA {
	as := Mul8(src.A, global)
	invAs := 255 - as
	aOut := as + Mul8(dst.A, invAs)
	if aOut == 0 {
		return Transparent
	}

	return RGBA{
		A: aOut,
		R: blendChannel(src.R, dst.R, as, dst.A, invAs, aOut),
		G: blendChannel(src.G, dst.G, as, dst.A, invAs, aOut),
		B: blendChannel(src.B, dst.B, as, dst.A, invAs, aOut),
	}
}
