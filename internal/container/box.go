package container

import (
	"encoding/binary"
	"io"
)

// Box is a single length-prefixed typed section of the container.
type Box struct {
	Type    uint32
	Payload []byte
}

// WriteSignature emits the fixed 12-byte stream prefix.
func WriteSignature(w io.Writer) error {
	_, err := w.Write(Signature[:])
	return err
}

// WriteBox emits one box: 4-byte big-endian total length (header included),
// 4-byte type, payload.
func WriteBox(w io.Writer, typ uint32, payload []byte) error {
	var hdr [BoxHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(BoxHeaderSize+len(payload)))
	binary.BigEndian.PutUint32(hdr[4:8], typ)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// FtypPayload returns the mandatory ftyp box payload: the brand followed by
// a zeroed minor version and compatibility list placeholder.
func FtypPayload() []byte {
	p := make([]byte, 8)
	copy(p, Brand[:])
	return p
}

// ReadBoxHeader parses a box length and type from data. Returns the type,
// the payload size, and ErrBadBox when the length field is inconsistent.
func ReadBoxHeader(data []byte) (typ uint32, payloadSize int, err error) {
	if len(data) < BoxHeaderSize {
		return 0, 0, ErrTruncated
	}
	total := binary.BigEndian.Uint32(data[0:4])
	typ = binary.BigEndian.Uint32(data[4:8])
	if total < BoxHeaderSize || total > MaxBoxPayload {
		return 0, 0, ErrBadBox
	}
	return typ, int(total) - BoxHeaderSize, nil
}
