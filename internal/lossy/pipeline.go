package lossy

import (
	"math"

	"github.com/lamco-admin/jxl/internal/dsp"
	"github.com/lamco-admin/jxl/internal/rans"
)

// EncodePlane transforms and quantizes one channel plane into its symbol
// stream. The plane is already in the scaled 0..255 float domain. levels is
// the frame's shared adaptive-quant map; q the user quality scalar.
//
// Symbol order is the serialization schedule: with progressive unset, each
// block contributes its DC difference followed by its 63 zigzag AC
// coefficients; with progressive set, the DC pass covers every block before
// each AC band does.
func EncodePlane(plane []float32, w, h, channel int, q float64, levels []uint8, progressive bool) []uint32 {
	bw := dsp.BlocksAcross(w)
	bh := dsp.BlocksAcross(h)
	n := bw * bh
	fq := dsp.QualityScale(q)
	tab := dsp.Template(channel)

	// Quantized coefficients per block, in zigzag order.
	zz := make([][dsp.BlockSamples]int16, n)
	var blk dsp.Block
	var quant [dsp.BlockSamples]int16
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			i := by*bw + bx
			dsp.ExtractBlock(plane, w, h, bx, by, &blk)
			dsp.FDCT2D(&blk)
			g := dsp.ScaleLevels[levels[i]]
			dsp.QuantizeBlock(&blk, tab, fq, g, &quant)
			for j := 0; j < dsp.BlockSamples; j++ {
				zz[i][j] = quant[dsp.Zigzag[j]]
			}
		}
	}

	symbols := make([]uint32, 0, n*dsp.BlockSamples)
	emitDC := func(i int, prev int16) int16 {
		symbols = append(symbols, rans.MapSigned(int32(zz[i][0])-int32(prev)))
		return zz[i][0]
	}
	if !progressive {
		var prevDC int16
		for i := 0; i < n; i++ {
			prevDC = emitDC(i, prevDC)
			for j := 1; j < dsp.BlockSamples; j++ {
				symbols = append(symbols, rans.MapSigned(int32(zz[i][j])))
			}
		}
		return symbols
	}
	var prevDC int16
	for i := 0; i < n; i++ {
		prevDC = emitDC(i, prevDC)
	}
	for p := 1; p < NumPasses; p++ {
		start, end := passBand(p)
		for i := 0; i < n; i++ {
			for j := start; j < end; j++ {
				symbols = append(symbols, rans.MapSigned(int32(zz[i][j])))
			}
		}
	}
	return symbols
}

// DecodePlane reverses EncodePlane, reconstructing the channel plane.
func DecodePlane(symbols []uint32, w, h, channel int, q float64, levels []uint8, progressive bool) ([]float32, error) {
	bw := dsp.BlocksAcross(w)
	bh := dsp.BlocksAcross(h)
	n := bw * bh
	if len(symbols) != n*dsp.BlockSamples || len(levels) != n {
		return nil, ErrCorrupt
	}
	fq := dsp.QualityScale(q)
	tab := dsp.Template(channel)

	zz := make([][dsp.BlockSamples]int16, n)
	pos := 0
	next := func() (int16, error) {
		v := rans.UnmapSigned(symbols[pos])
		pos++
		if v < math.MinInt16 || v > math.MaxInt16 {
			return 0, ErrCorrupt
		}
		return int16(v), nil
	}
	readDC := func(i int, prev int16) (int16, error) {
		diff, err := next()
		if err != nil {
			return 0, err
		}
		zz[i][0] = prev + diff
		return zz[i][0], nil
	}

	var err error
	if !progressive {
		var prevDC int16
		for i := 0; i < n; i++ {
			if prevDC, err = readDC(i, prevDC); err != nil {
				return nil, err
			}
			for j := 1; j < dsp.BlockSamples; j++ {
				if zz[i][j], err = next(); err != nil {
					return nil, err
				}
			}
		}
	} else {
		var prevDC int16
		for i := 0; i < n; i++ {
			if prevDC, err = readDC(i, prevDC); err != nil {
				return nil, err
			}
		}
		for p := 1; p < NumPasses; p++ {
			start, end := passBand(p)
			for i := 0; i < n; i++ {
				for j := start; j < end; j++ {
					if zz[i][j], err = next(); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	plane := make([]float32, w*h)
	var coeffs [dsp.BlockSamples]int16
	var blk dsp.Block
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			i := by*bw + bx
			for j := 0; j < dsp.BlockSamples; j++ {
				coeffs[dsp.Zigzag[j]] = zz[i][j]
			}
			g := dsp.ScaleLevels[levels[i]]
			dsp.DequantizeBlock(&coeffs, tab, fq, g, &blk)
			dsp.IDCT2D(&blk)
			dsp.StoreBlock(plane, w, h, bx, by, &blk)
		}
	}
	return plane, nil
}
