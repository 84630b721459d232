package jxl

import (
	"github.com/lamco-admin/jxl/internal/colorspace"
	"github.com/lamco-admin/jxl/internal/pool"
)

// Plane conversion between the interleaved image buffer and the per-channel
// working planes of the two pipelines. Color planes for the lossy path live
// in a scaled 0..255 float domain set by the per-channel opsin gains;
// grayscale bypasses the color transform entirely.

// lossyPlanes converts the image's color channels into XYB planes (or one
// luminance plane for grayscale). The returned planes come from the buffer
// pool; the caller releases them with releasePlanes.
func lossyPlanes(img *Image) [][]float32 {
	w, h := img.Width, img.Height
	if img.Channels == 1 {
		p := pool.GetFloat32(w * h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p[y*w+x] = float32(img.sampleUnit(x, y, 0) * 255)
			}
		}
		return [][]float32{p}
	}
	planes := make([][]float32, 3)
	for c := range planes {
		planes[c] = pool.GetFloat32(w * h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			r := colorspace.SrgbToLinear(img.sampleUnit(x, y, 0))
			g := colorspace.SrgbToLinear(img.sampleUnit(x, y, 1))
			b := colorspace.SrgbToLinear(img.sampleUnit(x, y, 2))
			yy, xx, bb := colorspace.ForwardXYB(r, g, b)
			planes[0][i] = float32(yy * colorspace.GainY)
			planes[1][i] = float32(xx * colorspace.GainX)
			planes[2][i] = float32(bb * colorspace.GainB)
		}
	}
	return planes
}

func releasePlanes(planes [][]float32) {
	for _, p := range planes {
		pool.PutFloat32(p)
	}
}

// storeLossyPlanes writes reconstructed XYB (or luminance) planes back into
// the image buffer, re-encoding the gamma and clamping to the sample range.
func storeLossyPlanes(img *Image, planes [][]float32) {
	w, h := img.Width, img.Height
	max := float64(img.maxValue())
	if img.Channels == 1 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := float64(planes[0][y*w+x]) / 255
				img.Pix[(y*w+x)*img.Channels] = clampSample(v*max, max)
			}
		}
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			yy := float64(planes[0][i]) / colorspace.GainY
			xx := float64(planes[1][i]) / colorspace.GainX
			bb := float64(planes[2][i]) / colorspace.GainB
			r, g, b := colorspace.InverseXYB(yy, xx, bb)
			o := i * img.Channels
			img.Pix[o+0] = clampSample(colorspace.LinearToSrgb(r)*max, max)
			img.Pix[o+1] = clampSample(colorspace.LinearToSrgb(g)*max, max)
			img.Pix[o+2] = clampSample(colorspace.LinearToSrgb(b)*max, max)
		}
	}
}

func clampSample(v, max float64) uint16 {
	v += 0.5
	if v < 0 {
		return 0
	}
	if v > max {
		return uint16(max)
	}
	return uint16(v)
}

// losslessPlanes converts the image's color channels into integer planes:
// Y, Co, Cg after the reversible transform for 3+ channels, or the raw
// plane for grayscale. Alpha is handled separately by the callers.
func losslessPlanes(img *Image) [][]int32 {
	w, h := img.Width, img.Height
	if img.Channels == 1 {
		p := make([]int32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p[y*w+x] = img.sample(x, y, 0)
			}
		}
		return [][]int32{p}
	}
	planes := make([][]int32, 3)
	for c := range planes {
		planes[c] = make([]int32, w*h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			yy, co, cg := colorspace.ForwardRCT(
				img.sample(x, y, 0), img.sample(x, y, 1), img.sample(x, y, 2))
			planes[0][i] = yy
			planes[1][i] = co
			planes[2][i] = cg
		}
	}
	return planes
}

// storeLosslessPlanes inverts losslessPlanes back into the image buffer.
// A sample outside the bit-depth range marks a corrupted stream.
func storeLosslessPlanes(img *Image, planes [][]int32) error {
	w, h := img.Width, img.Height
	max := img.maxValue()
	if img.Channels == 1 {
		for i, v := range planes[0] {
			img.Pix[i*img.Channels] = uint16(v)
		}
		return nil
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			r, g, b := colorspace.InverseRCT(planes[0][i], planes[1][i], planes[2][i])
			if r < 0 || r > max || g < 0 || g > max || b < 0 || b > max {
				return ErrOutOfRangeResidual
			}
			o := i * img.Channels
			img.Pix[o+0] = uint16(r)
			img.Pix[o+1] = uint16(g)
			img.Pix[o+2] = uint16(b)
		}
	}
	return nil
}

// alphaPlane extracts the alpha channel as an integer plane.
func alphaPlane(img *Image) []int32 {
	w, h := img.Width, img.Height
	p := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p[y*w+x] = img.sample(x, y, 3)
		}
	}
	return p
}
