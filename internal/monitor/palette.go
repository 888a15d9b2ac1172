package monitor

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var paletteHues = []float64{200, 280, 150, 35, 340, 170, 45, 220}

// PaletteColor returns the fallback series color for a dataset index.
func PaletteColor(index int) string {
	if index < 0 {
		index = -index
	}
	hue := paletteHues[index%len(paletteHues)]
	return colorful.Hsl(hue, 0.85, 0.60).Clamped().Hex()
}

// SeriesColor prefers the dataset's own color and falls back to the palette.
func SeriesColor(index int, borderColor string) string {
	if c, ok := parseCSSColor(borderColor); ok {
		return c.Hex()
	}
	return PaletteColor(index)
}

// parseCSSColor understands hex, rgb()/rgba() and hsl()/hsla() notations.
func parseCSSColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return colorful.Color{}, false
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		return c, err == nil
	}

	name, args, ok := strings.Cut(s, "(")
	if !ok || !strings.HasSuffix(args, ")") {
		return colorful.Color{}, false
	}
	args = strings.NewReplacer("%", "", ",", " ", "/", " ").Replace(strings.TrimSuffix(args, ")"))

	var a, b, c float64
	if n, err := fmt.Sscan(args, &a, &b, &c); err != nil || n != 3 {
		return colorful.Color{}, false
	}
	switch name {
	case "rgb", "rgba":
		return colorful.Color{R: a / 255, G: b / 255, B: c / 255}.Clamped(), true
	case "hsl", "hsla":
		return colorful.Hsl(a, b/100, c/100).Clamped(), true
	}
	return colorful.Color{}, false
}
