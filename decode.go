package jxl

import (
	"context"
	"io"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lamco-admin/jxl/internal/bitio"
	"github.com/lamco-admin/jxl/internal/dsp"
	"github.com/lamco-admin/jxl/internal/lossless"
	"github.com/lamco-admin/jxl/internal/lossy"
	"github.com/lamco-admin/jxl/internal/rans"
)

// Decode reads a compressed image from r and reconstructs the pixel array.
func Decode(r io.Reader) (*Image, error) {
	return DecodeContext(context.Background(), r)
}

// DecodeContext is Decode with a caller-provided cancellation signal. On
// any error the output image is not produced.
func DecodeContext(ctx context.Context, r io.Reader) (*Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, err.Error())
	}
	h, br, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	br.AlignToByte()

	img, err := NewImage(h.width, h.height, h.channels, h.bitDepth)
	if err != nil {
		return nil, err
	}
	if h.lossless {
		err = decodeLossless(ctx, br, h, img)
	} else {
		err = decodeLossy(ctx, br, h, img)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// readChannelBlobs pulls the per-channel payload length table and the
// payload bytes that follow it.
func readChannelBlobs(br *bitio.Reader, numColor int) ([][]byte, error) {
	lengths := make([]int, numColor)
	for c := range lengths {
		l, err := br.ReadBits(32)
		if err != nil {
			return nil, mapError(err)
		}
		lengths[c] = int(l)
	}
	blobs := make([][]byte, numColor)
	for c, l := range lengths {
		if l > br.Remaining()/8 {
			return nil, ErrTruncated
		}
		blob, err := br.ReadBytes(l)
		if err != nil {
			return nil, mapError(err)
		}
		blobs[c] = blob
	}
	return blobs, nil
}

// readAlphaBlob pulls the optional alpha payload.
func readAlphaBlob(br *bitio.Reader) ([]byte, error) {
	l, err := br.ReadBits(32)
	if err != nil {
		return nil, mapError(err)
	}
	if int(l) > br.Remaining()/8 {
		return nil, ErrTruncated
	}
	blob, err := br.ReadBytes(int(l))
	if err != nil {
		return nil, mapError(err)
	}
	return blob, nil
}

// decodeAlphaInto decodes the alpha payload into channel 3 of the image.
func decodeAlphaInto(img *Image, blob []byte) error {
	plane, err := lossless.DecodeChannel(blob, img.Width, img.Height, 0, img.maxValue())
	if err != nil {
		return mapError(err)
	}
	for i, v := range plane {
		img.Pix[i*img.Channels+3] = uint16(v)
	}
	return nil
}

// decodeLossy mirrors the lossy encode orchestration: adaptive-quant map,
// channel payloads in parallel, alpha, then the inverse color transform.
func decodeLossy(ctx context.Context, br *bitio.Reader, h *frameHeader, img *Image) error {
	aqLen, err := br.ReadBits(32)
	if err != nil {
		return mapError(err)
	}
	if int(aqLen) > br.Remaining()/8 {
		return ErrTruncated
	}
	aqBlob, err := br.ReadBytes(int(aqLen))
	if err != nil {
		return mapError(err)
	}
	numBlocks := dsp.BlocksAcross(h.width) * dsp.BlocksAcross(h.height)
	aqSymbols, err := rans.DecodePayload(aqBlob)
	if err != nil {
		return mapError(err)
	}
	levels, err := lossy.ScaleMapFromSymbols(aqSymbols, numBlocks)
	if err != nil {
		return mapError(err)
	}

	numColor := 3
	if h.channels == 1 {
		numColor = 1
	}
	blobs, err := readChannelBlobs(br, numColor)
	if err != nil {
		return err
	}
	var alphaBlob []byte
	if h.channels == 4 {
		if alphaBlob, err = readAlphaBlob(br); err != nil {
			return err
		}
	}

	planes := make([][]float32, numColor)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c := 0; c < numColor; c++ {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			symbols, err := rans.DecodePayload(blobs[c])
			if err != nil {
				return err
			}
			plane, err := lossy.DecodePlane(symbols, h.width, h.height, c, h.quality, levels, h.progressive)
			if err != nil {
				return err
			}
			planes[c] = plane
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return mapError(err)
	}
	storeLossyPlanes(img, planes)
	if h.channels == 4 {
		if err := decodeAlphaInto(img, alphaBlob); err != nil {
			return err
		}
	}
	return nil
}

// decodeLossless mirrors the predictive encode orchestration.
func decodeLossless(ctx context.Context, br *bitio.Reader, h *frameHeader, img *Image) error {
	numColor := 3
	if h.channels == 1 {
		numColor = 1
	}
	blobs, err := readChannelBlobs(br, numColor)
	if err != nil {
		return err
	}
	var alphaBlob []byte
	if h.channels == 4 {
		if alphaBlob, err = readAlphaBlob(br); err != nil {
			return err
		}
	}

	planes := make([][]int32, numColor)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c := 0; c < numColor; c++ {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lo, hi := lossless.Bounds(c, h.bitDepth)
			plane, err := lossless.DecodeChannel(blobs[c], h.width, h.height, lo, hi)
			if err != nil {
				return err
			}
			planes[c] = plane
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return mapError(err)
	}
	if err := storeLosslessPlanes(img, planes); err != nil {
		return err
	}
	if h.channels == 4 {
		if err := decodeAlphaInto(img, alphaBlob); err != nil {
			return err
		}
	}
	return nil
}
