package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var fallbackColor = color.RGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF}

// parseHex reads "#RRGGBB" or "RRGGBB". Anything else yields the fallback.
func parseHex(hex string) color.RGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return fallbackColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallbackColor
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// pointColor picks the point colour, then the series colour, then the
// chart palette entry i.
func pointColor(point, series string, palette []string, i int) color.RGBA {
	switch {
	case point != "":
		return parseHex(point)
	case series != "":
		return parseHex(series)
	case len(palette) > 0:
		return parseHex(palette[i%len(palette)])
	default:
		return fallbackColor
	}
}
