// Package matrix implements the 2D surfaces the effect pipeline renders
// into: an RGBA pixel matrix with alpha-blended writes and subpixel splats,
// a packed boolean matrix used as accumulation state, and the 2D-to-1D
// index mappings for common LED strip wirings.
package matrix

import (
	"fmt"
	"image"

	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Matrix is a width×height RGBA pixel surface stored row-major. Every
// coordinate-taking method clips silently: out-of-bounds writes are dropped
// and out-of-bounds reads return transparent black, negative coordinates
// included. Write paths blend with the stored pixel unless stated otherwise.
type Matrix struct {
	width  int
	height int
	pix    []ledcolor.RGBA
}

// New creates a matrix of the given dimensions with every pixel transparent
// black. Negative dimensions are treated as zero.
func New(width, height int) *Matrix {
	width = max(width, 0)
	height = max(height, 0)
	return &Matrix{
		width:  width,
		height: height,
		pix:    make([]ledcolor.RGBA, width*height),
	}
}

// FromPixels creates a matrix backed by a copy of the given row-major pixel
// slice. Returns an error if the slice length does not match the dimensions.
func FromPixels(width, height int, pix []ledcolor.RGBA) (*Matrix, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid matrix dimensions: %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel count %d does not match %dx%d matrix", len(pix), width, height)
	}
	m := New(width, height)
	copy(m.pix, pix)
	return m, nil
}

// Width returns the matrix width in pixels.
func (m *Matrix) Width() int { return m.width }

// Height returns the matrix height in pixels.
func (m *Matrix) Height() int { return m.height }

// Bounds returns the matrix extent as a rectangle anchored at the origin.
func (m *Matrix) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// Pixels returns the backing row-major pixel slice. The slice is live and
// reused across frames; callers that keep a frame must copy it.
func (m *Matrix) Pixels() []ledcolor.RGBA { return m.pix }

func (m *Matrix) inside(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the pixel at (x, y), or transparent black when out of bounds.
func (m *Matrix) At(x, y int) ledcolor.RGBA {
	if !m.inside(x, y) {
		return ledcolor.Transparent
	}
	return m.pix[y*m.width+x]
}

// Set blends c over the stored pixel at (x, y) with source-over compositing.
func (m *Matrix) Set(x, y int, c ledcolor.RGBA) {
	if !m.inside(x, y) {
		return
	}
	i := y*m.width + x
	m.pix[i] = ledcolor.SourceOver(m.pix[i], c)
}

// SetScaled blends c over the stored pixel at (x, y) with the source alpha
// scaled by global/255.
func (m *Matrix) SetScaled(x, y int, c ledcolor.RGBA, global uint8) {
	if !m.inside(x, y) {
		return
	}
	i := y*m.width + x
	m.pix[i] = ledcolor.SourceOverScaled(m.pix[i], c, global)
}

// SetRewrite stores c at (x, y) without blending.
func (m *Matrix) SetRewrite(x, y int, c ledcolor.RGBA) {
	if !m.inside(x, y) {
		return
	}
	m.pix[y*m.width+x] = c
}

// BlendOver composites the stored pixel at (x, y) over the supplied
// background and returns the result without modifying the matrix.
func (m *Matrix) BlendOver(x, y int, background ledcolor.RGBA) ledcolor.RGBA {
	return ledcolor.SourceOver(background, m.At(x, y))
}

// Fill blends c into every pixel of r clipped to the matrix bounds.
func (m *Matrix) Fill(r image.Rectangle, c ledcolor.RGBA) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := y*m.width + x
			m.pix[i] = ledcolor.SourceOver(m.pix[i], c)
		}
	}
}

// Draw blends every pixel of src onto the matrix with the source top-left
// corner at (dx, dy), scaling source alpha by global/255. Pixels falling
// outside the matrix are dropped.
func (m *Matrix) Draw(dx, dy int, src *Matrix, global uint8) {
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			m.SetScaled(dx+x, dy+y, src.pix[y*src.width+x], global)
		}
	}
}

// Clear resets every pixel to transparent black.
func (m *Matrix) Clear() {
	clear(m.pix)
}

// Resize reallocates the matrix to the given dimensions, discarding the
// contents. Resizing to the current dimensions is a no-op and keeps them.
func (m *Matrix) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.pix = make([]ledcolor.RGBA, width*height)
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	c := New(m.width, m.height)
	copy(c.pix, m.pix)
	return c
}
