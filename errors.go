package jxl

import (
	"errors"

	"github.com/lamco-admin/jxl/internal/bitio"
	"github.com/lamco-admin/jxl/internal/container"
	"github.com/lamco-admin/jxl/internal/lossless"
	"github.com/lamco-admin/jxl/internal/lossy"
	"github.com/lamco-admin/jxl/internal/rans"
)

// Error taxonomy of the codec. Failures caused by the image or the stream
// match one of these through errors.Is; decode errors are the most specific
// class the corrupt input admits, never a generic catch-all. Cancellation
// surfaces the context's error, and invalid Options and writer or reader
// failures are returned without a taxonomy sentinel.
var (
	// ErrTruncated reports input that ran out before the expected payload.
	ErrTruncated = errors.New("jxl: truncated stream")
	// ErrBadSignature reports a container signature mismatch.
	ErrBadSignature = errors.New("jxl: bad signature")
	// ErrBadDimensions reports a zero or oversized width or height.
	ErrBadDimensions = errors.New("jxl: bad image dimensions")
	// ErrInvalidDistribution reports entropy frequencies that do not sum
	// to the normalization total.
	ErrInvalidDistribution = errors.New("jxl: invalid symbol distribution")
	// ErrSymbolOutOfRange reports an encode-side symbol past the alphabet.
	ErrSymbolOutOfRange = errors.New("jxl: symbol out of range")
	// ErrOutOfRangeResidual reports a decoded sample outside the declared
	// bit-depth range.
	ErrOutOfRangeResidual = errors.New("jxl: residual out of range")
	// ErrUnsupportedColorSpace reports a channel count outside {1,3,4}.
	ErrUnsupportedColorSpace = errors.New("jxl: unsupported color space")
	// ErrCorrupt reports any other violated bitstream invariant.
	ErrCorrupt = errors.New("jxl: corrupt stream")
	// ErrInternal reports a broken internal invariant; it indicates a bug.
	ErrInternal = errors.New("jxl: internal invariant violation")
)

// mapError lifts a component-level failure into the public taxonomy,
// keeping the public sentinel on the errors.Is chain.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTruncated),
		errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrBadDimensions),
		errors.Is(err, ErrInvalidDistribution),
		errors.Is(err, ErrSymbolOutOfRange),
		errors.Is(err, ErrOutOfRangeResidual),
		errors.Is(err, ErrUnsupportedColorSpace),
		errors.Is(err, ErrCorrupt),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, bitio.ErrEndOfStream),
		errors.Is(err, rans.ErrTruncated),
		errors.Is(err, container.ErrTruncated):
		return ErrTruncated
	case errors.Is(err, container.ErrBadSignature):
		return ErrBadSignature
	case errors.Is(err, rans.ErrInvalidDistribution):
		return ErrInvalidDistribution
	case errors.Is(err, rans.ErrSymbolOutOfRange):
		return ErrSymbolOutOfRange
	case errors.Is(err, lossless.ErrOutOfRangeResidual):
		return ErrOutOfRangeResidual
	case errors.Is(err, container.ErrBadBox),
		errors.Is(err, container.ErrNoCodestream),
		errors.Is(err, container.ErrBadBrand),
		errors.Is(err, rans.ErrAlphabetTooLarge),
		errors.Is(err, lossy.ErrCorrupt),
		errors.Is(err, bitio.ErrOverflow):
		return ErrCorrupt
	default:
		return err
	}
}
