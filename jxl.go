// Package jxl implements a self-contained still-image codec with a lossy
// transform-domain mode and a lossless predictive mode.
//
// The compressed stream is a sequence of length-prefixed boxes carrying a
// bit-packed codestream. Lossy frames run pixels through a perceptual color
// transform, an 8x8 block DCT with adaptively scaled quantization and a
// range entropy coder; lossless frames use a reversible integer color
// transform with a clamped gradient predictor. Both modes share the hybrid
// token layer that keeps the entropy alphabet small.
package jxl

import (
	"fmt"
	"io"

	"github.com/lamco-admin/jxl/internal/bitio"
	"github.com/lamco-admin/jxl/internal/container"
)

// Config describes a stream's geometry without decoding its payload.
type Config struct {
	Width    int
	Height   int
	Channels int
	BitDepth int
}

// Features describes a stream's properties, as returned by GetFeatures.
type Features struct {
	Width       int
	Height      int
	Channels    int
	BitDepth    int
	Lossless    bool
	Progressive bool
	HasAlpha    bool
}

// readAll reads all data from r. If r implements Len() int (e.g.
// *bytes.Reader), a single exact-sized allocation is used instead of the
// repeated doublings that io.ReadAll performs.
func readAll(r io.Reader) ([]byte, error) {
	if lr, ok := r.(interface{ Len() int }); ok {
		n := lr.Len()
		if n > 0 {
			data := make([]byte, n)
			_, err := io.ReadFull(r, data)
			return data, err
		}
	}
	return io.ReadAll(r)
}

// frameHeader is the decoded fixed portion of the codestream.
type frameHeader struct {
	lossless    bool
	width       int
	height      int
	channels    int
	bitDepth    int
	progressive bool
	quality     float64
}

// readHeader parses the header fields off the front of the codestream
// reader, leaving it positioned at the first payload section.
func readHeader(r *bitio.Reader) (*frameHeader, error) {
	var h frameHeader
	losslessBit, err := r.ReadBit()
	if err != nil {
		return nil, mapError(err)
	}
	h.lossless = losslessBit == 1
	w, err := r.ReadBits(32)
	if err != nil {
		return nil, mapError(err)
	}
	ht, err := r.ReadBits(32)
	if err != nil {
		return nil, mapError(err)
	}
	h.width, h.height = int(w), int(ht)
	if h.width < 1 || h.width > MaxDimension || h.height < 1 || h.height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, h.width, h.height)
	}
	ch, err := r.ReadBits(4)
	if err != nil {
		return nil, mapError(err)
	}
	h.channels = int(ch)
	if h.channels != 1 && h.channels != 3 && h.channels != 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedColorSpace, h.channels)
	}
	depthM1, err := r.ReadBits(4)
	if err != nil {
		return nil, mapError(err)
	}
	h.bitDepth = int(depthM1) + 1
	if h.bitDepth != 8 && h.bitDepth != 16 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrCorrupt, h.bitDepth)
	}
	if !h.lossless {
		prog, err := r.ReadBit()
		if err != nil {
			return nil, mapError(err)
		}
		h.progressive = prog == 1
		q100, err := r.ReadBits(16)
		if err != nil {
			return nil, mapError(err)
		}
		if q100 < 100 || q100 > 10000 {
			return nil, fmt.Errorf("%w: quality field %d", ErrCorrupt, q100)
		}
		h.quality = float64(q100) / 100
	}
	return &h, nil
}

// parseHeader locates the codestream inside data and decodes its header.
func parseHeader(data []byte) (*frameHeader, *bitio.Reader, error) {
	p, err := container.Parse(data)
	if err != nil {
		return nil, nil, mapError(err)
	}
	r := bitio.NewReader(p.Codestream())
	h, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}
	return h, r, nil
}

// DecodeConfig returns the dimensions, channel count and bit depth of a
// compressed image without decoding its payload.
func DecodeConfig(r io.Reader) (Config, error) {
	data, err := readAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("jxl: reading data: %w", err)
	}
	h, _, err := parseHeader(data)
	if err != nil {
		return Config{}, err
	}
	return Config{Width: h.width, Height: h.height, Channels: h.channels, BitDepth: h.bitDepth}, nil
}

// GetFeatures reads stream features (geometry, mode, alpha) without
// decoding pixel data.
func GetFeatures(r io.Reader) (*Features, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("jxl: reading data: %w", err)
	}
	h, _, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	return &Features{
		Width:       h.width,
		Height:      h.height,
		Channels:    h.channels,
		BitDepth:    h.bitDepth,
		Lossless:    h.lossless,
		Progressive: h.progressive,
		HasAlpha:    h.channels == 4,
	}, nil
}
