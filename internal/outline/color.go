package outline

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA highlight colour with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// DefaultColor is the highlight used when a step does not name one.
var DefaultColor = Color{R: 1, G: 0.65, B: 0, A: 1}

// RGB creates a colour from 8-bit components with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the colour with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float32(v>>24&0xff) / 255.0,
		G: float32(v>>16&0xff) / 255.0,
		B: float32(v>>8&0xff) / 255.0,
		A: float32(v&0xff) / 255.0,
	}, nil
}
