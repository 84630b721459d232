// Package lossy implements the transform-domain pipeline: 8x8 blocking,
// forward and inverse DCT with quantization, the adaptive-quant map, DC
// prediction, and the progressive pass schedule that orders coefficient
// serialization.
package lossy

import "errors"

// ErrCorrupt reports a coefficient stream that violates a pipeline
// invariant (wrong symbol count or a coefficient outside the 16-bit range).
var ErrCorrupt = errors.New("lossy: corrupt coefficient payload")

// PassCoeffCounts is the progressive schedule: the DC pass followed by four
// AC bands, covering all 64 coefficients of a block. Partial decodes of the
// schedule yield previews at roughly 20%..100% quality.
var PassCoeffCounts = [5]int{1, 15, 16, 16, 16}

// passBand returns the zigzag index range [start, end) of pass p.
func passBand(p int) (start, end int) {
	start = 0
	for i := 0; i < p; i++ {
		start += PassCoeffCounts[i]
	}
	return start, start + PassCoeffCounts[p]
}

// NumPasses is the length of the progressive schedule.
const NumPasses = len(PassCoeffCounts)
