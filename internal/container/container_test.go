package container

import (
	"bytes"
	"errors"
	"testing"
)

func buildStream(t *testing.T, codestream []byte, trailing ...Box) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteSignature(&buf); err != nil {
		t.Fatal(err)
	}
	if err := WriteBox(&buf, TypeFtyp, FtypPayload()); err != nil {
		t.Fatal(err)
	}
	if err := WriteBox(&buf, TypeJxlc, codestream); err != nil {
		t.Fatal(err)
	}
	for _, b := range trailing {
		if err := WriteBox(&buf, b.Type, b.Payload); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestWriteParseRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	data := buildStream(t, payload)

	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(p.Codestream(), payload) {
		t.Fatalf("codestream = %v, want %v", p.Codestream(), payload)
	}
	if len(p.Boxes()) != 2 {
		t.Fatalf("got %d boxes, want 2", len(p.Boxes()))
	}
}

func TestSignatureBytes(t *testing.T) {
	want := []byte{0x00, 0x00, 0x00, 0x0c, 0x4a, 0x58, 0x4c, 0x20, 0x0d, 0x0a, 0x87, 0x0a}
	if !bytes.Equal(Signature[:], want) {
		t.Fatalf("signature = % x, want % x", Signature[:], want)
	}
}

func TestFtypLayout(t *testing.T) {
	data := buildStream(t, nil)
	// Signature (12) + ftyp header (8): length 16, type ftyp, brand, zeros.
	ftyp := data[12:28]
	want := []byte{0, 0, 0, 16, 'f', 't', 'y', 'p', 'j', 'x', 'l', ' ', 0, 0, 0, 0}
	if !bytes.Equal(ftyp, want) {
		t.Fatalf("ftyp box = % x, want % x", ftyp, want)
	}
}

func TestUnknownTrailingBoxSkipped(t *testing.T) {
	data := buildStream(t, []byte{9, 9}, Box{Type: BoxType('x', 'm', 'l', ' '), Payload: []byte("<x/>")})
	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse with trailing box: %v", err)
	}
	if !bytes.Equal(p.Codestream(), []byte{9, 9}) {
		t.Fatal("codestream corrupted by trailing box")
	}
}

func TestBadSignature(t *testing.T) {
	data := buildStream(t, []byte{1})
	data[4] ^= 0x01 // flip a bit inside the signature
	if _, err := Parse(data); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("err = %v, want ErrBadSignature", err)
	}
}

func TestTruncated(t *testing.T) {
	data := buildStream(t, []byte{1, 2, 3, 4})
	for _, cut := range []int{0, 5, 11, 13, 21, len(data) - 1} {
		if _, err := Parse(data[:cut]); err == nil {
			t.Fatalf("Parse of %d-byte prefix succeeded", cut)
		}
	}
}

func TestCorruptLength(t *testing.T) {
	data := buildStream(t, []byte{1, 2, 3, 4})
	// The jxlc box starts after signature (12) + ftyp (16). Invert a bit
	// in its length field.
	data[28] ^= 0x80
	_, err := Parse(data)
	if !errors.Is(err, ErrBadBox) && !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrBadBox or ErrTruncated", err)
	}
}

func TestMissingCodestream(t *testing.T) {
	var buf bytes.Buffer
	WriteSignature(&buf)
	WriteBox(&buf, TypeFtyp, FtypPayload())
	if _, err := Parse(buf.Bytes()); !errors.Is(err, ErrNoCodestream) {
		t.Fatalf("err = %v, want ErrNoCodestream", err)
	}
}

func TestBadBrand(t *testing.T) {
	data := buildStream(t, []byte{1})
	data[20] = 'q' // first brand byte inside ftyp payload
	if _, err := Parse(data); !errors.Is(err, ErrBadBrand) {
		t.Fatalf("err = %v, want ErrBadBrand", err)
	}
}
