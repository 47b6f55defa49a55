package render

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/alphamatrix/ledgrid/internal/matrix"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

func TestCellRenderer_Render(t *testing.T) {
	m := matrix.New(4, 4)
	m.Set(0, 0, ledcolor.Red)

	r := NewCellRenderer()
	img := r.Render(m)

	wantSize := 4*24 + 2*10
	if img.Bounds().Dx() != wantSize || img.Bounds().Dy() != wantSize {
		t.Fatalf("Image size = %v, want %dx%d", img.Bounds(), wantSize, wantSize)
	}

	// Background corner is black.
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("Background = %+v, want black", got)
	}

	// Center of the first cell carries the LED color.
	if got := img.RGBAAt(10+12, 10+12); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Lit cell center = %+v, want red", got)
	}

	// Center of an unlit cell is black fill.
	if got := img.RGBAAt(10+24+12, 10+12); got != (color.RGBA{A: 255}) {
		t.Errorf("Unlit cell center = %+v, want black", got)
	}

	// Cell corner carries the border.
	if got := img.RGBAAt(10, 10); got != borderGray {
		t.Errorf("Cell corner = %+v, want border gray", got)
	}
}

func TestCellRenderer_NoBorder(t *testing.T) {
	m := matrix.New(2, 2)
	img := NewCellRenderer(WithBorder(false)).Render(m)
	if got := img.RGBAAt(10, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("Cell corner = %+v, want black without border", got)
	}
}

func TestCellRenderer_TargetSize(t *testing.T) {
	m := matrix.New(4, 4)
	img := NewCellRenderer(WithTargetSize(100, 100)).Render(m)

	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Fatalf("Image size = %v, want 100x100", img.Bounds())
	}
	// Available 80x80 over a 4x4 panel gives 20-pixel cells centered at
	// offset 10; the panel corner carries the border.
	if got := img.RGBAAt(10, 10); got != borderGray {
		t.Errorf("Panel corner = %+v, want border gray", got)
	}
}

func TestCellRenderer_TranslucentPixel(t *testing.T) {
	m := matrix.New(1, 1)
	m.Set(0, 0, ledcolor.NewARGB(128, 255, 255, 255))

	img := NewCellRenderer(WithBorder(false)).Render(m)
	got := img.RGBAAt(10+12, 10+12)
	if got.A != 255 {
		t.Fatalf("LED alpha = %d, want opaque output", got.A)
	}
	if got.R == 0 || got.R == 255 {
		t.Errorf("Half-alpha white over black = %+v, want mid gray", got)
	}
}

func TestAnnotator_Caption(t *testing.T) {
	a, err := NewAnnotator()
	if err != nil {
		t.Fatalf("NewAnnotator() error: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	if err := a.Caption(img, "demo #3 @99ms"); err != nil {
		t.Fatalf("Caption() error: %v", err)
	}

	touched := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i-3] != 0 {
			touched = true
			break
		}
	}
	if !touched {
		t.Error("Caption drew nothing")
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding output: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 6 {
		t.Errorf("Decoded size = %v", decoded.Bounds())
	}
}

func TestFilmstrip(t *testing.T) {
	var frames []*image.RGBA
	for i := 0; i < 5; i++ {
		f := image.NewRGBA(image.Rect(0, 0, 10, 10))
		f.SetRGBA(0, 0, color.RGBA{R: uint8(i + 1), A: 255})
		frames = append(frames, f)
	}

	strip := Filmstrip(frames, 3)
	if strip.Bounds().Dx() != 30 || strip.Bounds().Dy() != 20 {
		t.Fatalf("Strip size = %v, want 30x20", strip.Bounds())
	}

	// The fifth frame lands in the second row, second column.
	if got := strip.RGBAAt(10, 10); got.R != 5 {
		t.Errorf("Fifth frame corner = %+v", got)
	}
	// The unused last tile stays black.
	if got := strip.RGBAAt(20, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("Empty tile = %+v, want black", got)
	}
}

func TestWriteGIF(t *testing.T) {
	var frames []*image.RGBA
	for i := 0; i < 3; i++ {
		f := image.NewRGBA(image.Rect(0, 0, 6, 6))
		for p := 3; p < len(f.Pix); p += 4 {
			f.Pix[p] = 255
			f.Pix[p-3] = uint8(80 * i)
		}
		frames = append(frames, f)
	}

	var buf bytes.Buffer
	if err := WriteGIF(&buf, frames, 4); err != nil {
		t.Fatalf("WriteGIF() error: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("Decoding output: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Fatalf("Decoded %d frames, want 3", len(anim.Image))
	}
	for _, d := range anim.Delay {
		if d != 4 {
			t.Errorf("Delay = %d, want 4", d)
		}
	}

	if err := WriteGIF(&buf, nil, 4); err == nil {
		t.Error("WriteGIF() with no frames succeeded")
	}
}

func TestFramePalette_Fallback(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	n := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(n), G: uint8(n >> 8), A: 255})
			n++
		}
	}
	if pal := framePalette(img); len(pal) != 256 {
		t.Errorf("Overflowing palette has %d entries, want Plan 9 fallback of 256", len(pal))
	}
}
