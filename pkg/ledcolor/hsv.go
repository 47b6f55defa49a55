package ledcolor

// HSV is a color in 8-bit HSV space. Hue's useful range is 0..254, divided
// into six 43-unit regions; hue does not wrap, so 255 falls into the tail of
// region 5 rather than aliasing back to red.
type HSV struct {
	H, S, V uint8
}

// RGB converts the color to an opaque RGBA using HSVToRGB.
func (c HSV) RGB() RGBA {
	r, g, b := HSVToRGB(c.H, c.S, c.V)
	return RGBA{A: 0xff, R: r, G: g, B: b}
}

// HSVToRGB converts 8-bit hue, saturation and value to 8-bit RGB using the
// six-region integer algorithm. The function is total: every input triple is
// legal and maps to a defined output.
//
// The hue range splits at multiples of 43 (255/6 rounded up), the offset
// within a region is rescaled toward 0..255 by multiplying by 6, and the
// p/q/t brightness levels use >>8 as an approximation of /255. The rounding
// that approximation introduces is part of the contract; rendered output and
// golden tests depend on these exact values.
func HSVToRGB(h, s, v uint8) (r, g, b uint8) {
	region := h / 43
	remainder := uint8(uint16(h-region*43) * 6)

	// Products can reach 255*255, so they are carried in uint16 and
	// truncated to 8 bits only after the shift.
	p := uint8((uint16(v) * uint16(255-s)) >> 8)
	q := uint8((uint16(v) * (255 - ((uint16(s) * uint16(remainder)) >> 8))) >> 8)
	t := uint8((uint16(v) * (255 - ((uint16(s) * (255 - uint16(remainder))) >> 8))) >> 8)

	// region 5 doubles as the default so that any out-of-range region from a
	// future generalization lands on the magenta-to-red mapping.
	switch region {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return r, g, b
}
