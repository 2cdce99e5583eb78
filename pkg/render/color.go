package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// ParseColor resolves an SVG colour name ("white", "steelblue") or a
// #rrggbb / #rgb hex string.
func ParseColor(name string) (color.RGBA, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", name)
	}

	hex := name[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", name)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", name, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustParseColor is ParseColor falling back to fallback on error.
func MustParseColor(name string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(name)
	if err != nil {
		return fallback
	}
	return c
}

// ToScreen maps a simulation position (origin at the viewport centre, y up)
// to screen pixels (origin top-left, y down).
func ToScreen(pos physics.Vector2D, width, height float64) (x, y float64) {
	return pos.X + width/2, height/2 - pos.Y
}
