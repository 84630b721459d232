package colorspace

import "math"

// Standard sRGB transfer curves. Encoded values and linear values are both
// in [0, 1]; inputs outside that range are clamped by the callers.

// SrgbToLinear removes the sRGB gamma encoding.
func SrgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSrgb applies the sRGB gamma encoding.
func LinearToSrgb(c float64) float64 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 1
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
