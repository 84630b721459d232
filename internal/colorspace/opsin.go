// Package colorspace implements the two color transforms of the codec: the
// perceptual opsin-based XYB transform used by the lossy path, and the
// reversible integer YCoCg transform used by the lossless path, plus the
// sRGB transfer curves that bracket the lossy transform.
package colorspace

import "math"

// Opsin absorbance matrix and bias. RGB-linear maps to cone responses
// L,M,S = A*(R,G,B) + bias; the channels then pass through a cube root.
// Both sides of the codec use these exact constants.
const (
	opsinM00 = 0.30
	opsinM01 = 0.622
	opsinM02 = 0.078
	opsinM10 = 0.23
	opsinM11 = 0.692
	opsinM12 = 0.078
	opsinM20 = 0.24342268924547819
	opsinM21 = 0.20476744424496821
	opsinM22 = 0.55180986650955360

	opsinBias = 0.0037930732552754493
)

// Inverse of the opsin matrix, applied after re-cubing on decode.
const (
	opsinInv00 = 11.031566901960783
	opsinInv01 = -9.866943921568629
	opsinInv02 = -0.16462299647058826
	opsinInv10 = -3.254147380392157
	opsinInv11 = 4.418770392156863
	opsinInv12 = -0.16462299647058826
	opsinInv20 = -3.6588512862745097
	opsinInv21 = 2.7129230470588235
	opsinInv22 = 1.9459282392156863
)

// Per-channel plane gains applied after the transform so that all three
// planes quantize in a comparable 0..255 numeric domain. The X opponent
// channel has a small natural amplitude and gets the largest gain.
const (
	GainY = 255.0
	GainX = 1024.0
	GainB = 340.0
)

// Gain returns the plane gain for color channel c.
func Gain(c int) float64 {
	switch c {
	case 1:
		return GainX
	case 2:
		return GainB
	default:
		return GainY
	}
}

// ForwardXYB converts one linear-RGB sample to the Y, X, B representation:
// Y = f(L), X = f(L) - f(M), B = f(M) - f(S), with f the cube root.
func ForwardXYB(r, g, b float64) (y, x, bb float64) {
	l := opsinM00*r + opsinM01*g + opsinM02*b + opsinBias
	m := opsinM10*r + opsinM11*g + opsinM12*b + opsinBias
	s := opsinM20*r + opsinM21*g + opsinM22*b + opsinBias
	fl := math.Cbrt(l)
	fm := math.Cbrt(m)
	fs := math.Cbrt(s)
	return fl, fl - fm, fm - fs
}

// InverseXYB reverses ForwardXYB back to linear RGB.
func InverseXYB(y, x, bb float64) (r, g, b float64) {
	fl := y
	fm := fl - x
	fs := fm - bb
	l := fl*fl*fl - opsinBias
	m := fm*fm*fm - opsinBias
	s := fs*fs*fs - opsinBias
	r = opsinInv00*l + opsinInv01*m + opsinInv02*s
	g = opsinInv10*l + opsinInv11*m + opsinInv12*s
	b = opsinInv20*l + opsinInv21*m + opsinInv22*s
	return r, g, b
}
