package render

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
)

// WritePNG encodes one image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Filmstrip lays frames out in a grid montage, cols frames per row, filling
// rows left to right. All frames must share the first frame's size; the
// unused tail of the last row stays black.
func Filmstrip(frames []*image.RGBA, cols int) *image.RGBA {
	if len(frames) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	cols = max(cols, 1)
	cols = min(cols, len(frames))
	rows := (len(frames) + cols - 1) / cols

	fw := frames[0].Bounds().Dx()
	fh := frames[0].Bounds().Dy()
	strip := image.NewRGBA(image.Rect(0, 0, cols*fw, rows*fh))
	draw.Draw(strip, strip.Bounds(), image.Black, image.Point{}, draw.Src)

	for i, frame := range frames {
		x := (i % cols) * fw
		y := (i / cols) * fh
		draw.Draw(strip, image.Rect(x, y, x+fw, y+fh), frame, frame.Bounds().Min, draw.Src)
	}
	return strip
}

// WriteFilmstrip encodes the montage of frames as PNG.
func WriteFilmstrip(w io.Writer, frames []*image.RGBA, cols int) error {
	return WritePNG(w, Filmstrip(frames, cols))
}

// WriteGIF encodes frames as an animated GIF looping forever, with the
// given delay in hundredths of a second per frame. Each frame gets its own
// palette built from its distinct colors; a frame with more than 256 falls
// back to the Plan 9 palette.
func WriteGIF(w io.Writer, frames []*image.RGBA, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	delay = max(delay, 1)

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		pal := framePalette(frame)
		paletted := image.NewPaletted(frame.Bounds(), pal)
		draw.Draw(paletted, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

// framePalette collects the frame's distinct colors into a palette. LED
// frames are mostly flat fills, so they almost always fit the 256-entry
// budget exactly.
func framePalette(img *image.RGBA) color.Palette {
	seen := make(map[color.RGBA]struct{})
	var pal color.Palette

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
			if len(pal) > 256 {
				return palette.Plan9
			}
		}
	}
	return pal
}
