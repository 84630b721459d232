package lossy

import (
	"github.com/lamco-admin/jxl/internal/dsp"
)

// ComputeScaleMap derives the adaptive-quant map from the luma plane: one
// scale level per 8x8 block, chosen from the block's AC energy after the
// forward transform. All channels of the frame share the map.
func ComputeScaleMap(plane []float32, w, h int) []uint8 {
	bw := dsp.BlocksAcross(w)
	bh := dsp.BlocksAcross(h)
	levels := make([]uint8, bw*bh)
	var blk dsp.Block
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			dsp.ExtractBlock(plane, w, h, bx, by, &blk)
			dsp.FDCT2D(&blk)
			e := dsp.BlockEnergy(&blk)
			levels[by*bw+bx] = uint8(dsp.ScaleLevel(e))
		}
	}
	return levels
}

// ScaleMapSymbols widens the map for payload coding. The level alphabet is
// 16 symbols, so every entry tokenizes directly.
func ScaleMapSymbols(levels []uint8) []uint32 {
	out := make([]uint32, len(levels))
	for i, lv := range levels {
		out[i] = uint32(lv)
	}
	return out
}

// ScaleMapFromSymbols validates and narrows a decoded map payload.
func ScaleMapFromSymbols(symbols []uint32, want int) ([]uint8, error) {
	if len(symbols) != want {
		return nil, ErrCorrupt
	}
	levels := make([]uint8, len(symbols))
	for i, s := range symbols {
		if s >= dsp.NumScaleLevels {
			return nil, ErrCorrupt
		}
		levels[i] = uint8(s)
	}
	return levels, nil
}
