package lossless

import (
	"github.com/lamco-admin/jxl/internal/rans"
)

// EncodeChannel predicts and entropy-codes one w-by-h integer plane whose
// samples lie in [lo, hi]. The returned blob is a self-describing payload
// (see the rans package framing).
func EncodeChannel(plane []int32, w, h int, lo, hi int32) ([]byte, error) {
	symbols := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			var left, top, topLeft int32
			if x > 0 {
				left = plane[i-1]
			}
			if y > 0 {
				top = plane[i-w]
				if x > 0 {
					topLeft = plane[i-w-1]
				}
			}
			p := predict(left, top, topLeft, lo, hi)
			symbols[i] = rans.MapSigned(plane[i] - p)
		}
	}
	return rans.EncodePayload(symbols)
}

// DecodeChannel reverses EncodeChannel, reconstructing the plane in raster
// order. A sample landing outside [lo, hi] yields ErrOutOfRangeResidual.
func DecodeChannel(data []byte, w, h int, lo, hi int32) ([]int32, error) {
	symbols, err := rans.DecodePayload(data)
	if err != nil {
		return nil, err
	}
	if len(symbols) != w*h {
		return nil, rans.ErrTruncated
	}
	plane := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			var left, top, topLeft int32
			if x > 0 {
				left = plane[i-1]
			}
			if y > 0 {
				top = plane[i-w]
				if x > 0 {
					topLeft = plane[i-w-1]
				}
			}
			p := predict(left, top, topLeft, lo, hi)
			v := p + rans.UnmapSigned(symbols[i])
			if v < lo || v > hi {
				return nil, ErrOutOfRangeResidual
			}
			plane[i] = v
		}
	}
	return plane, nil
}

// Bounds returns the sample domain of channel index c (in Y, Co, Cg order)
// for the given bit depth. The chroma channels of the reversible color
// transform are signed.
func Bounds(c, bitDepth int) (lo, hi int32) {
	max := int32(1)<<uint(bitDepth) - 1
	if c == 1 || c == 2 {
		return -max, max
	}
	return 0, max
}
