package render

import (
	"fmt"
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontDPI    = 72
	fontSize   = 12
	textMargin = 6
)

// Annotator draws caption text onto rendered frames using the Go Regular
// typeface.
type Annotator struct {
	font *truetype.Font
}

// NewAnnotator parses the embedded typeface.
func NewAnnotator() (*Annotator, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Annotator{font: f}, nil
}

// Caption draws one line of text along the bottom edge of the image.
func (a *Annotator) Caption(img *image.RGBA, text string) error {
	c := freetype.NewContext()
	c.SetDPI(fontDPI)
	c.SetFont(a.font)
	c.SetFontSize(fontSize)
	c.SetHinting(font.HintingFull)
	c.SetSrc(image.White)
	c.SetDst(img)
	c.SetClip(img.Bounds())

	pt := freetype.Pt(textMargin, img.Bounds().Max.Y-textMargin)
	if _, err := c.DrawString(text, pt); err != nil {
		return fmt.Errorf("drawing caption: %w", err)
	}
	return nil
}
