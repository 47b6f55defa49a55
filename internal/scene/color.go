package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Named colors accepted in scene files, mapped to the predefined set.
var namedColors = map[string]ledcolor.RGBA{
	"transparent": ledcolor.Transparent,
	"black":       ledcolor.Black,
	"white":       ledcolor.White,
	"red":         ledcolor.Red,
	"orange":      ledcolor.Orange,
	"yellow":      ledcolor.Yellow,
	"green":       ledcolor.Green,
	"cyan":        ledcolor.Cyan,
	"blue":        ledcolor.Blue,
	"magenta":     ledcolor.Magenta,
	"purple":      ledcolor.Purple,
}

// ParseColor parses a scene color: a named color, a #RRGGBB hex color, or
// the #AARRGGBB extension carrying an explicit alpha. A zero alpha byte in
// the extended form reads as opaque, matching the packed color convention.
func ParseColor(s string) (ledcolor.RGBA, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[text]; ok {
		return c, nil
	}

	if strings.HasPrefix(text, "#") && len(text) == 9 {
		v, err := strconv.ParseUint(text[1:], 16, 32)
		if err != nil {
			return ledcolor.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return ledcolor.FromPacked(uint32(v)), nil
	}

	// colorful.Hex scans a matching prefix and ignores trailing digits, so
	// only the exact #RGB and #RRGGBB shapes reach it.
	if strings.HasPrefix(text, "#") && len(text) != 4 && len(text) != 7 {
		return ledcolor.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	c, err := colorful.Hex(text)
	if err != nil {
		return ledcolor.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ledcolor.NewRGB(r, g, b), nil
}
