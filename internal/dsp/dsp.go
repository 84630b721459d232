// Package dsp holds the block-transform kernels and the quantization
// machinery: the 8x8 orthonormal DCT pair, the zigzag scan, the perceptual
// quantization templates with their quality scaling, and the per-block
// adaptive step scale.
//
// Kernels are reached through package-level function variables assigned by
// Init. The scalar implementations are the reference semantics; a platform
// may install vectorized kernels at initialization as long as they produce
// bit-identical quantized output. No dispatch happens inside hot loops.
package dsp

// BlockSize is the transform edge length. BlockSamples is its square.
const (
	BlockSize    = 8
	BlockSamples = BlockSize * BlockSize
)

// Block is one 8x8 tile of samples or coefficients in raster order.
type Block [BlockSamples]float32

// Transform kernel dispatch. Set by Init; overridable before first use.
var (
	// FDCT2D applies the forward 2D DCT-II in place.
	FDCT2D func(*Block)
	// IDCT2D applies the inverse 2D DCT in place.
	IDCT2D func(*Block)
)

// Zigzag maps a linear scan index to the raster position inside a block,
// ordering coefficients by increasing spatial frequency. ZigzagInv is its
// inverse permutation; the two compose to the identity.
var Zigzag = [BlockSamples]uint8{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

var ZigzagInv [BlockSamples]uint8

// Init wires the scalar reference kernels and builds the derived tables.
// It must run before any block is transformed; the package init does so.
func Init() {
	initCosineTable()
	FDCT2D = fdct2dScalar
	IDCT2D = idct2dScalar
	for i, z := range Zigzag {
		ZigzagInv[z] = uint8(i)
	}
}

func init() {
	Init()
}
