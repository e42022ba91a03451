// Package palette converts the simulation's hue/brightness/alpha colours to RGB.
package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Saturation used for every firework and particle colour.
const Saturation = 1.0

// WrapHue maps any hue (a fraction of the colour wheel) into [0, 1).
func WrapHue(h float32) float32 {
	w := h - float32(math.Floor(float64(h)))
	if w >= 1 {
		w = 0
	}
	return w
}

// RGB converts a hue and brightness (HSL lightness) to 8-bit RGB.
func RGB(hue, brightness float32) (r, g, b uint8) {
	c := colorful.Hsl(float64(WrapHue(hue))*360, Saturation, clamp01(float64(brightness)))
	return c.Clamped().RGB255()
}

// Alpha8 converts an alpha in [0, 1] to 8 bits, clamping out-of-range values.
func Alpha8(alpha float32) uint8 {
	return uint8(math.Round(clamp01(float64(alpha)) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
