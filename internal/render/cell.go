// Package render turns captured frames into viewable images: a cell
// renderer that draws a frame as an LED panel picture, a freetype caption
// annotator and PNG, filmstrip and GIF encoders.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

const (
	defaultCellSize = 24
	defaultPadding  = 10
)

// Cell borders separate the LEDs without competing with them.
var borderGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// CellRenderer draws a frame matrix as a picture of an LED panel: one
// square cell per pixel with an inset fill square, over a black background.
type CellRenderer struct {
	cellSize int
	padding  int
	border   bool
	targetW  int
	targetH  int
	footer   int
}

// Option configures a CellRenderer.
type Option func(*CellRenderer)

// WithCellSize sets the cell edge length in output pixels. Ignored when a
// target size is set.
func WithCellSize(px int) Option {
	return func(r *CellRenderer) {
		if px > 0 {
			r.cellSize = px
		}
	}
}

// WithPadding sets the margin around the panel.
func WithPadding(px int) Option {
	return func(r *CellRenderer) {
		if px >= 0 {
			r.padding = px
		}
	}
}

// WithBorder toggles the per-cell border.
func WithBorder(on bool) Option {
	return func(r *CellRenderer) {
		r.border = on
	}
}

// WithTargetSize fixes the output image size; the cell size is derived to
// fit the panel and the panel is centered.
func WithTargetSize(w, h int) Option {
	return func(r *CellRenderer) {
		if w > 0 && h > 0 {
			r.targetW, r.targetH = w, h
		}
	}
}

// WithFooter reserves a caption strip of the given height under the panel.
func WithFooter(h int) Option {
	return func(r *CellRenderer) {
		if h >= 0 {
			r.footer = h
		}
	}
}

// NewCellRenderer returns a renderer with 24-pixel bordered cells and a
// 10-pixel margin.
func NewCellRenderer(opts ...Option) *CellRenderer {
	r := &CellRenderer{
		cellSize: defaultCellSize,
		padding:  defaultPadding,
		border:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the matrix into a new image. Translucent matrix pixels are
// composited over black, the way an unlit panel shows them.
func (r *CellRenderer) Render(m *matrix.Matrix) *image.RGBA {
	w, h := m.Width(), m.Height()

	step := r.cellSize
	imgW := w*step + 2*r.padding
	imgH := h*step + 2*r.padding + r.footer
	if r.targetW > 0 {
		imgW, imgH = r.targetW, r.targetH
		availW := imgW - 2*r.padding
		availH := imgH - r.footer - 2*r.padding
		step = 0
		if w > 0 && h > 0 {
			step = min(availW/w, availH/h)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, max(imgW, 1), max(imgH, 1)))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	if step < 1 {
		return img
	}

	// Center the panel in the area above the footer.
	offX := (imgW - w*step) / 2
	offY := (imgH - r.footer - h*step) / 2

	fillSize := step - max(2, step/4)
	inset := (step - fillSize) / 2

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			x0 := offX + cx*step
			y0 := offY + cy*step

			if r.border {
				drawRectOutline(img, image.Rect(x0, y0, x0+step, y0+step), borderGray)
			}

			c := m.BlendOver(cx, cy, ledcolor.Black)
			led := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
			fillRect(img, image.Rect(x0+inset, y0+inset, x0+inset+fillSize, y0+inset+fillSize), led)
		}
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func drawRectOutline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}
