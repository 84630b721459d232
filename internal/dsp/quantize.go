package dsp

import "math"

// Perceptual quantization templates, one per color channel, indexed in
// raster order. The Y template follows the classic luminance weighting;
// the X (red-green opponent) channel uses the classic chrominance table,
// which flattens out at coarse steps beyond the lowest frequencies; the B
// (blue-yellow) channel uses the same shape with roughly 20% coarser steps.
var (
	TemplateY = [BlockSamples]int32{
		16, 11, 10, 16, 24, 40, 51, 61,
		12, 12, 14, 19, 26, 58, 60, 55,
		14, 13, 16, 24, 40, 57, 69, 56,
		14, 17, 22, 29, 51, 87, 80, 62,
		18, 22, 37, 56, 68, 109, 103, 77,
		24, 35, 55, 64, 81, 104, 113, 92,
		49, 64, 78, 87, 103, 121, 120, 101,
		72, 92, 95, 98, 112, 100, 103, 99,
	}
	TemplateX = [BlockSamples]int32{
		17, 18, 24, 47, 66, 99, 99, 99,
		18, 21, 26, 66, 99, 99, 99, 99,
		24, 26, 56, 99, 99, 99, 99, 99,
		47, 66, 99, 99, 99, 99, 99, 99,
		66, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
	}
	TemplateB = [BlockSamples]int32{
		21, 22, 29, 56, 80, 119, 119, 119,
		22, 25, 31, 80, 119, 119, 119, 119,
		29, 31, 67, 119, 119, 119, 119, 119,
		56, 80, 119, 119, 119, 119, 119, 119,
		80, 119, 119, 119, 119, 119, 119, 119,
		119, 119, 119, 119, 119, 119, 119, 119,
		119, 119, 119, 119, 119, 119, 119, 119,
		119, 119, 119, 119, 119, 119, 119, 119,
	}
)

// Template returns the quantization template for color channel c (0=Y, 1=X,
// 2=B). Grayscale images use the Y template.
func Template(c int) *[BlockSamples]int32 {
	switch c {
	case 1:
		return &TemplateX
	case 2:
		return &TemplateB
	default:
		return &TemplateY
	}
}

// QualityScale maps the user quality scalar q in [1,100] to the global step
// multiplier f(q). Strictly decreasing, with the anchor points f(90) = 1.0,
// f(50) = 2.0 and f(100) = 0.3.
func QualityScale(q float64) float64 {
	switch {
	case q <= 1:
		return 8.0
	case q <= 50:
		return 2.0 + (50-q)*(6.0/49)
	case q <= 90:
		return 1.0 + (90-q)*(1.0/40)
	case q >= 100:
		return 0.3
	default:
		return 1.0 - (q-90)*0.07
	}
}

// Adaptive per-block step scale. Flat blocks (low AC energy) take coarser
// steps; busy blocks take finer ones. The thresholds are in the 0..255
// sample domain the planes are scaled to before the transform.
const (
	aqEnergyLow  = 8.0
	aqEnergyHigh = 64.0
	aqScaleFlat  = 1.5
	aqScaleBusy  = 0.7
	// NumScaleLevels is the adaptive-quant map alphabet size.
	NumScaleLevels = 16
)

// ScaleLevels holds the representable per-block scales, geometrically
// spaced over [0.5, 2.0]. The map stores a level index per block; both
// sides quantize through the level's value so the step agrees exactly.
var ScaleLevels [NumScaleLevels]float64

func init() {
	for i := range ScaleLevels {
		ScaleLevels[i] = 0.5 * math.Pow(4, float64(i)/float64(NumScaleLevels-1))
	}
}

// BlockEnergy returns the RMS of the 63 AC coefficients of a transformed
// block.
func BlockEnergy(b *Block) float64 {
	var sum float64
	for i := 1; i < BlockSamples; i++ {
		v := float64(b[i])
		sum += v * v
	}
	return math.Sqrt(sum / (BlockSamples - 1))
}

// ScaleLevel maps AC energy to the nearest representable scale level.
func ScaleLevel(energy float64) int {
	var g float64
	switch {
	case energy <= aqEnergyLow:
		g = aqScaleFlat
	case energy >= aqEnergyHigh:
		g = aqScaleBusy
	default:
		t := (energy - aqEnergyLow) / (aqEnergyHigh - aqEnergyLow)
		g = aqScaleFlat + t*(aqScaleBusy-aqScaleFlat)
	}
	best, bestDiff := 0, math.Inf(1)
	for i, lv := range ScaleLevels {
		if d := math.Abs(lv - g); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

// QuantizeBlock divides transformed coefficients by the scaled template
// steps and rounds to the nearest integer (half away from zero).
func QuantizeBlock(b *Block, tab *[BlockSamples]int32, fq, g float64, out *[BlockSamples]int16) {
	for i := 0; i < BlockSamples; i++ {
		step := float64(tab[i]) * fq * g
		q := math.Round(float64(b[i]) / step)
		if q > math.MaxInt16 {
			q = math.MaxInt16
		} else if q < math.MinInt16 {
			q = math.MinInt16
		}
		out[i] = int16(q)
	}
}

// DequantizeBlock multiplies quantized coefficients back by the scaled
// template steps.
func DequantizeBlock(in *[BlockSamples]int16, tab *[BlockSamples]int32, fq, g float64, out *Block) {
	for i := 0; i < BlockSamples; i++ {
		step := float64(tab[i]) * fq * g
		out[i] = float32(float64(in[i]) * step)
	}
}
