package field

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseColor turns "#rrggbb" into a color with the given opacity in [0,1]. Malformed input is black.
func ParseColor(hex string, alpha float64) color.NRGBA {
	value, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(hex, "#")) != 6 {
		value = 0
	}

	return color.NRGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: opacity(alpha),
	}
}

// BackgroundAt is the background color at t in [0,1], from BackgroundTop down to BackgroundBottom.
func BackgroundAt(t float64) color.NRGBA {
	t = min(max(t, 0), 1)

	top := ParseColor(BackgroundTop, 1)
	bottom := ParseColor(BackgroundBottom, 1)

	return color.NRGBA{
		R: lerp(top.R, bottom.R, t),
		G: lerp(top.G, bottom.G, t),
		B: lerp(top.B, bottom.B, t),
		A: 255,
	}
}

func lerp(from, to uint8, t float64) uint8 {
	return uint8(float64(from) + (float64(to)-float64(from))*t + 0.5)
}

func opacity(alpha float64) uint8 {
	return uint8(min(max(alpha, 0), 1)*255 + 0.5)
}
