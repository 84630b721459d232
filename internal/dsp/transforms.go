package dsp

import "math"

// cosTable[k*8+n] = s(k) * cos((2n+1) k pi / 16) with the orthonormal
// scaling s(0) = 1/sqrt(8), s(k>0) = sqrt(2/8). Applying it as a matrix
// along rows and then columns gives the separable 2D DCT-II; applying the
// transpose inverts it exactly.
var cosTable [BlockSamples]float64

func initCosineTable() {
	for k := 0; k < BlockSize; k++ {
		s := math.Sqrt(2.0 / BlockSize)
		if k == 0 {
			s = 1.0 / math.Sqrt(BlockSize)
		}
		for n := 0; n < BlockSize; n++ {
			cosTable[k*BlockSize+n] = s * math.Cos((2*float64(n)+1)*float64(k)*math.Pi/16)
		}
	}
}

// fdct1d transforms one row of 8 samples: dst[k] = sum_n c[k][n] * src[n].
func fdct1d(src, dst *[BlockSize]float64) {
	for k := 0; k < BlockSize; k++ {
		var acc float64
		for n := 0; n < BlockSize; n++ {
			acc += cosTable[k*BlockSize+n] * src[n]
		}
		dst[k] = acc
	}
}

// idct1d inverts fdct1d: dst[n] = sum_k c[k][n] * src[k].
func idct1d(src, dst *[BlockSize]float64) {
	for n := 0; n < BlockSize; n++ {
		var acc float64
		for k := 0; k < BlockSize; k++ {
			acc += cosTable[k*BlockSize+n] * src[k]
		}
		dst[n] = acc
	}
}

// fdct2dScalar is the scalar reference forward transform: a 1D pass along
// each row, then along each column, in float64 to keep the round-trip error
// within the 1e-4 bound.
func fdct2dScalar(b *Block) {
	var tmp [BlockSamples]float64
	var row, out [BlockSize]float64
	for y := 0; y < BlockSize; y++ {
		for x := 0; x < BlockSize; x++ {
			row[x] = float64(b[y*BlockSize+x])
		}
		fdct1d(&row, &out)
		for x := 0; x < BlockSize; x++ {
			tmp[y*BlockSize+x] = out[x]
		}
	}
	for x := 0; x < BlockSize; x++ {
		for y := 0; y < BlockSize; y++ {
			row[y] = tmp[y*BlockSize+x]
		}
		fdct1d(&row, &out)
		for y := 0; y < BlockSize; y++ {
			b[y*BlockSize+x] = float32(out[y])
		}
	}
}

// idct2dScalar is the scalar reference inverse transform.
func idct2dScalar(b *Block) {
	var tmp [BlockSamples]float64
	var col, out [BlockSize]float64
	for x := 0; x < BlockSize; x++ {
		for y := 0; y < BlockSize; y++ {
			col[y] = float64(b[y*BlockSize+x])
		}
		idct1d(&col, &out)
		for y := 0; y < BlockSize; y++ {
			tmp[y*BlockSize+x] = out[y]
		}
	}
	for y := 0; y < BlockSize; y++ {
		for x := 0; x < BlockSize; x++ {
			col[x] = tmp[y*BlockSize+x]
		}
		idct1d(&col, &out)
		for x := 0; x < BlockSize; x++ {
			b[y*BlockSize+x] = float32(out[x])
		}
	}
}
