package jxl

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lamco-admin/jxl/internal/bitio"
	"github.com/lamco-admin/jxl/internal/container"
	"github.com/lamco-admin/jxl/internal/lossless"
	"github.com/lamco-admin/jxl/internal/lossy"
	"github.com/lamco-admin/jxl/internal/rans"
)

// frameState tracks the single-frame assembly state machine. One frame at
// a time; nothing persists across frames.
type frameState int

const (
	stateIdle frameState = iota
	stateHeaderEmitted
	statePayloadEmitted
	stateDone
)

// frameEncoder drives one frame through the pipeline and owns every
// intermediate buffer; component calls borrow them.
type frameEncoder struct {
	state frameState
	img   *Image
	opts  *Options
	bw    *bitio.Writer
}

func (e *frameEncoder) transition(from, to frameState) error {
	if e.state != from {
		return errors.Wrapf(ErrInternal, "frame state %d, want %d", e.state, from)
	}
	e.state = to
	return nil
}

// Encode compresses img into w using opts (nil means defaults).
func Encode(w io.Writer, img *Image, opts *Options) error {
	return EncodeContext(context.Background(), w, img, opts)
}

// EncodeContext is Encode with a caller-provided cancellation signal,
// checked at channel boundaries during parallel steps and between boxes
// during serialization. On error or cancellation no partial output is
// valid and the writer must be discarded.
func EncodeContext(ctx context.Context, w io.Writer, img *Image, opts *Options) error {
	if img == nil {
		return errors.Wrap(ErrBadDimensions, "nil image")
	}
	if err := img.validate(); err != nil {
		return err
	}
	n := img.Width * img.Height * img.Channels
	if (img.SampleType == SampleUint && len(img.Pix) != n) ||
		(img.SampleType == SampleFloat && len(img.PixF) != n) {
		return fmt.Errorf("%w: pixel buffer does not match dimensions", ErrCorrupt)
	}
	resolved, err := validateOptions(opts)
	if err != nil {
		return err
	}

	enc := &frameEncoder{img: img, opts: resolved, bw: bitio.NewWriter(n / 4)}
	if err := enc.writeHeader(); err != nil {
		return err
	}
	if err := enc.writePayload(ctx); err != nil {
		return err
	}
	return enc.writeContainer(ctx, w)
}

// writeHeader emits the fixed codestream fields and byte-aligns the stream
// for the payload sections.
func (e *frameEncoder) writeHeader() error {
	if err := e.transition(stateIdle, stateHeaderEmitted); err != nil {
		return err
	}
	bw := e.bw
	lossBit := uint32(0)
	if e.opts.Lossless {
		lossBit = 1
	}
	bw.WriteBit(lossBit)
	bw.WriteBits(uint32(e.img.Width), 32)
	bw.WriteBits(uint32(e.img.Height), 32)
	bw.WriteBits(uint32(e.img.Channels), 4)
	bw.WriteBits(uint32(e.img.BitDepth-1), 4)
	if !e.opts.Lossless {
		prog := uint32(0)
		if e.opts.Progressive {
			prog = 1
		}
		bw.WriteBit(prog)
		bw.WriteBits(uint32(math.Round(float64(e.opts.Quality)*100)), 16)
	}
	bw.AlignToByte()
	return nil
}

// writePayload emits the adaptive-quant map (lossy), the per-channel
// payload length table and the channel payloads, then the alpha payload
// when present.
func (e *frameEncoder) writePayload(ctx context.Context) error {
	if err := e.transition(stateHeaderEmitted, statePayloadEmitted); err != nil {
		return err
	}
	img, bw := e.img, e.bw
	numColor := 3
	if img.Channels == 1 {
		numColor = 1
	}

	var blobs [][]byte
	var err error
	if e.opts.Lossless {
		blobs, err = e.losslessBlobs(ctx, numColor)
	} else {
		blobs, err = e.lossyBlobs(ctx, numColor)
	}
	if err != nil {
		return err
	}

	for _, blob := range blobs[:numColor] {
		bw.WriteBits(uint32(len(blob)), 32)
	}
	for _, blob := range blobs[:numColor] {
		if err := bw.WriteBytes(blob); err != nil {
			return errors.Wrap(mapError(err), "channel payload")
		}
	}
	if img.Channels == 4 {
		alpha := blobs[numColor]
		bw.WriteBits(uint32(len(alpha)), 32)
		if err := bw.WriteBytes(alpha); err != nil {
			return errors.Wrap(mapError(err), "alpha payload")
		}
	}
	return nil
}

// lossyBlobs runs the transform pipeline: the adaptive-quant map is
// computed from the luma plane, written first, and shared by every channel;
// channel transforms run in parallel and are gathered in channel order.
func (e *frameEncoder) lossyBlobs(ctx context.Context, numColor int) ([][]byte, error) {
	img, bw := e.img, e.bw
	planes := lossyPlanes(img)
	defer releasePlanes(planes)

	levels := lossy.ComputeScaleMap(planes[0], img.Width, img.Height)
	aqBlob, err := rans.EncodePayload(lossy.ScaleMapSymbols(levels))
	if err != nil {
		return nil, mapError(err)
	}
	bw.WriteBits(uint32(len(aqBlob)), 32)
	if err := bw.WriteBytes(aqBlob); err != nil {
		return nil, mapError(err)
	}

	blobs := make([][]byte, numColor, numColor+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	// Quantize the quality through the 16-bit header field so encoder and
	// decoder derive identical tables.
	q := math.Round(float64(e.opts.Quality)*100) / 100
	for c := 0; c < numColor; c++ {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			symbols := lossy.EncodePlane(planes[c], img.Width, img.Height, c, q, levels, e.opts.Progressive)
			blob, err := rans.EncodePayload(symbols)
			if err != nil {
				return err
			}
			blobs[c] = blob
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, mapError(err)
	}
	if img.Channels == 4 {
		// Alpha rides the lossless integer pipeline even in lossy frames.
		blob, err := lossless.EncodeChannel(alphaPlane(img), img.Width, img.Height, 0, img.maxValue())
		if err != nil {
			return nil, mapError(err)
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}

// losslessBlobs runs the predictive pipeline over the reversible color
// transform output (plus alpha), one distribution per channel.
func (e *frameEncoder) losslessBlobs(ctx context.Context, numColor int) ([][]byte, error) {
	img := e.img
	planes := losslessPlanes(img)

	blobs := make([][]byte, numColor, numColor+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c := 0; c < numColor; c++ {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lo, hi := lossless.Bounds(c, img.BitDepth)
			blob, err := lossless.EncodeChannel(planes[c], img.Width, img.Height, lo, hi)
			if err != nil {
				return err
			}
			blobs[c] = blob
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, mapError(err)
	}
	if img.Channels == 4 {
		blob, err := lossless.EncodeChannel(alphaPlane(img), img.Width, img.Height, 0, img.maxValue())
		if err != nil {
			return nil, mapError(err)
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}

// writeContainer wraps the finished codestream in the outer box structure.
func (e *frameEncoder) writeContainer(ctx context.Context, w io.Writer) error {
	if err := e.transition(statePayloadEmitted, stateDone); err != nil {
		return err
	}
	if err := container.WriteSignature(w); err != nil {
		return errors.Wrap(err, "jxl: writing signature")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := container.WriteBox(w, container.TypeFtyp, container.FtypPayload()); err != nil {
		return errors.Wrap(err, "jxl: writing ftyp")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := container.WriteBox(w, container.TypeJxlc, e.bw.Bytes()); err != nil {
		return errors.Wrap(err, "jxl: writing codestream")
	}
	return nil
}
