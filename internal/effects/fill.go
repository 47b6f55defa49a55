package effects

import (
	"image"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Fill blends a constant color over its destination rect every frame. With a
// translucent color it acts as a tint layer over whatever rendered below it.
type Fill struct {
	Color ledcolor.RGBA

	// Rect is the destination; the zero rect covers the whole matrix.
	Rect image.Rectangle
}

// NewFill returns a fill layer for the given color.
func NewFill(c ledcolor.RGBA) *Fill {
	return &Fill{Color: c}
}

// Recalc is a no-op, the fill has no animation state.
func (f *Fill) Recalc(time.Duration) {}

// Render blends the fill color into the destination rect.
func (f *Fill) Render(m *matrix.Matrix) {
	m.Fill(target(m, f.Rect), f.Color)
}
