// Package container implements the outer box structure of the compressed
// stream: the fixed 12-byte signature followed by length-prefixed typed
// boxes, of which ftyp and jxlc are mandatory. Unknown boxes after jxlc
// are tolerated and skipped.
package container

import "errors"

// Signature is the fixed 12-byte stream prefix. It is itself shaped like a
// box (length 12, type "JXL ") whose payload guards against line-ending
// corruption the way the PNG signature does.
var Signature = [12]byte{0x00, 0x00, 0x00, 0x0c, 'J', 'X', 'L', ' ', 0x0d, 0x0a, 0x87, 0x0a}

// BoxType creates a box type value from four bytes (big-endian).
func BoxType(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}

// Box types.
var (
	TypeFtyp = BoxType('f', 't', 'y', 'p')
	TypeJxlc = BoxType('j', 'x', 'l', 'c')
)

// Brand is the ftyp brand advertising the codestream generation. A future
// change of the predictor set or pass schedule requires a new brand.
var Brand = [4]byte{'j', 'x', 'l', ' '}

// BoxHeaderSize is the size of the length + type prefix.
const BoxHeaderSize = 8

// MaxBoxPayload bounds a single box payload; larger lengths are treated as
// corruption.
const MaxBoxPayload = 1 << 30

// Errors returned by the container layer.
var (
	ErrBadSignature = errors.New("container: signature mismatch")
	ErrTruncated    = errors.New("container: truncated data")
	ErrBadBox       = errors.New("container: invalid box length")
	ErrNoCodestream = errors.New("container: missing jxlc box")
	ErrBadBrand     = errors.New("container: unknown ftyp brand")
)

// TypeString returns a human-readable name for a box type.
func TypeString(t uint32) string {
	b := [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	return string(b[:])
}
