// Package ledlayout maps between matrix coordinates and LED strip wire
// order. A panel is one strip folded into rows or columns; a Layout plus the
// X/Y inversion flags describes which corner the strip starts in and how it
// snakes. PerimeterLen and PerimeterPoint walk a rectangle outline for
// frame-shaped strips.
package ledlayout

import (
	"fmt"

	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Layout selects the traversal order used when flattening a matrix into LED
// wire order.
type Layout int

const (
	// LayoutRows scans rows left to right, top to bottom.
	LayoutRows Layout = iota
	// LayoutSerpentine scans rows with every odd row reversed.
	LayoutSerpentine
	// LayoutColumns scans columns top to bottom, left to right.
	LayoutColumns
	// LayoutColumnsSerpentine scans columns with every odd column reversed.
	LayoutColumnsSerpentine
)

// ParseLayout maps a configuration name to a Layout.
func ParseLayout(name string) (Layout, error) {
	switch name {
	case "rows":
		return LayoutRows, nil
	case "serpentine":
		return LayoutSerpentine, nil
	case "columns":
		return LayoutColumns, nil
	case "columns-serpentine":
		return LayoutColumnsSerpentine, nil
	}
	return 0, fmt.Errorf("unknown strip layout %q", name)
}

// String returns the configuration name of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutRows:
		return "rows"
	case LayoutSerpentine:
		return "serpentine"
	case LayoutColumns:
		return "columns"
	case LayoutColumnsSerpentine:
		return "columns-serpentine"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// StripIndex maps matrix coordinates to the LED position along the wire for
// the given layout. Inversions mirror the coordinate before the layout is
// applied. Returns -1 for out-of-bounds coordinates.
func StripIndex(layout Layout, w, h, x, y int, invertX, invertY bool) int {
	if x < 0 || x >= w || y < 0 || y >= h {
		return -1
	}
	if invertX {
		x = w - 1 - x
	}
	if invertY {
		y = h - 1 - y
	}
	switch layout {
	case LayoutSerpentine:
		if y%2 == 1 {
			x = w - 1 - x
		}
		return y*w + x
	case LayoutColumns:
		return x*h + y
	case LayoutColumnsSerpentine:
		if x%2 == 1 {
			y = h - 1 - y
		}
		return x*h + y
	default:
		return y*w + x
	}
}

// Unravel flattens a row-major w×h pixel slice into LED wire order for the
// given layout. Returns nil when pix does not hold w*h pixels.
func Unravel(layout Layout, w, h int, pix []ledcolor.RGBA, invertX, invertY bool) []ledcolor.RGBA {
	if w < 0 || h < 0 || len(pix) != w*h {
		return nil
	}
	out := make([]ledcolor.RGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[StripIndex(layout, w, h, x, y, invertX, invertY)] = pix[y*w+x]
		}
	}
	return out
}

// PerimeterLen returns the number of distinct cells on the perimeter of a
// w×h rectangle, with each corner counted once.
func PerimeterLen(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	if w == 1 {
		return h
	}
	if h == 1 {
		return w
	}
	return 2*(w+h) - 4
}

// PerimeterPoint maps a position along the perimeter of a w×h rectangle to
// cell coordinates. The walk is clockwise from the top-left corner, right
// along the top edge first, and visits each corner exactly once. Returns
// ok=false when i is outside [0, PerimeterLen(w, h)).
func PerimeterPoint(w, h, i int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || i < 0 {
		return 0, 0, false
	}
	if h == 1 {
		if i < w {
			return i, 0, true
		}
		return 0, 0, false
	}
	if w == 1 {
		if i < h {
			return 0, i, true
		}
		return 0, 0, false
	}
	if i >= 2*(w+h)-4 {
		return 0, 0, false
	}

	// Top edge, left to right.
	if i < w {
		return i, 0, true
	}
	i -= w
	// Right edge, top to bottom, skipping the top-right corner.
	if i < h-1 {
		return w - 1, 1 + i, true
	}
	i -= h - 1
	// Bottom edge, right to left, skipping the bottom-right corner.
	if i < w-1 {
		return w - 2 - i, h - 1, true
	}
	i -= w - 1
	// Left edge, bottom to top, skipping both corners.
	return 0, h - 2 - i, true
}
