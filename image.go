package jxl

import "fmt"

// SampleType selects the numeric representation of the pixel buffer.
type SampleType int

const (
	// SampleUint stores unsigned integers at the image bit depth in Pix.
	SampleUint SampleType = iota
	// SampleFloat stores single-precision samples in [0, 1] in PixF.
	// The codestream carries samples at the declared bit depth, so float
	// buffers are quantized to that depth at the frame boundary and
	// decoded frames always use SampleUint.
	SampleFloat
)

// MaxDimension is the largest accepted width or height, in pixels.
const MaxDimension = 1 << 24

// Image is an interleaved pixel grid. The buffer holds exactly
// Width*Height*Channels samples in channel-major-per-pixel order, with no
// row padding.
type Image struct {
	Width      int
	Height     int
	Channels   int // 1 (gray), 3 (RGB) or 4 (RGBA)
	BitDepth   int // 8 or 16
	SampleType SampleType
	Pix        []uint16  // SampleUint buffer
	PixF       []float32 // SampleFloat buffer
}

// NewImage allocates an integer-sampled image of the given geometry.
func NewImage(w, h, channels, bitDepth int) (*Image, error) {
	img := &Image{
		Width:    w,
		Height:   h,
		Channels: channels,
		BitDepth: bitDepth,
	}
	if err := img.validate(); err != nil {
		return nil, err
	}
	img.Pix = make([]uint16, w*h*channels)
	return img, nil
}

// validate checks the geometry invariants shared by encode and decode.
func (img *Image) validate() error {
	if img.Width < 1 || img.Width > MaxDimension ||
		img.Height < 1 || img.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrBadDimensions, img.Width, img.Height)
	}
	if img.Channels != 1 && img.Channels != 3 && img.Channels != 4 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedColorSpace, img.Channels)
	}
	if img.BitDepth != 8 && img.BitDepth != 16 {
		return fmt.Errorf("%w: bit depth %d", ErrCorrupt, img.BitDepth)
	}
	n := img.Width * img.Height * img.Channels
	switch img.SampleType {
	case SampleUint:
		if len(img.Pix) != 0 && len(img.Pix) != n {
			return fmt.Errorf("%w: buffer length %d, want %d", ErrCorrupt, len(img.Pix), n)
		}
	case SampleFloat:
		if len(img.PixF) != 0 && len(img.PixF) != n {
			return fmt.Errorf("%w: buffer length %d, want %d", ErrCorrupt, len(img.PixF), n)
		}
	default:
		return fmt.Errorf("%w: sample type %d", ErrCorrupt, img.SampleType)
	}
	return nil
}

// maxValue returns the largest representable sample at the image depth.
func (img *Image) maxValue() int32 {
	return int32(1)<<uint(img.BitDepth) - 1
}

// sample returns pixel (x, y) channel c as an integer at the image depth.
func (img *Image) sample(x, y, c int) int32 {
	i := (y*img.Width+x)*img.Channels + c
	if img.SampleType == SampleFloat {
		v := img.PixF[i]
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		return int32(v*float32(img.maxValue()) + 0.5)
	}
	return int32(img.Pix[i])
}

// sampleUnit returns pixel (x, y) channel c scaled to [0, 1].
func (img *Image) sampleUnit(x, y, c int) float64 {
	i := (y*img.Width+x)*img.Channels + c
	if img.SampleType == SampleFloat {
		v := float64(img.PixF[i])
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return float64(img.Pix[i]) / float64(img.maxValue())
}
