package bitio

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	type field struct {
		v     uint32
		width int
	}
	fields := make([]field, 0, 500)
	w := NewWriter(0)
	for i := 0; i < 500; i++ {
		width := 1 + rng.Intn(32)
		var v uint32
		if width == 32 {
			v = rng.Uint32()
		} else {
			v = rng.Uint32() & (1<<uint(width) - 1)
		}
		if err := w.WriteBits(v, width); err != nil {
			t.Fatalf("WriteBits(%#x, %d): %v", v, width, err)
		}
		fields = append(fields, field{v, width})
	}
	r := NewReader(w.Bytes())
	for i, f := range fields {
		got, err := r.ReadBits(f.width)
		if err != nil {
			t.Fatalf("ReadBits #%d: %v", i, err)
		}
		if got != f.v {
			t.Fatalf("field %d = %#x, want %#x (width %d)", i, got, f.v, f.width)
		}
	}
}

func TestLSBFirstLayout(t *testing.T) {
	w := NewWriter(0)
	// 1, then 3-bit 0b101, then 4-bit 0b0110 -> byte 0110_101_1 = 0x6b.
	w.WriteBits(1, 1)
	w.WriteBits(0b101, 3)
	w.WriteBits(0b0110, 4)
	got := w.Bytes()
	if len(got) != 1 || got[0] != 0x6b {
		t.Fatalf("bytes = %#x, want [0x6b]", got)
	}
}

func TestOverflow(t *testing.T) {
	w := NewWriter(0)
	if err := w.WriteBits(4, 2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("value wider than width: err = %v, want ErrOverflow", err)
	}
	if err := w.WriteBits(0, 0); !errors.Is(err, ErrOverflow) {
		t.Fatalf("width 0: err = %v, want ErrOverflow", err)
	}
	if err := w.WriteBits(0, 33); !errors.Is(err, ErrOverflow) {
		t.Fatalf("width 33: err = %v, want ErrOverflow", err)
	}
	r := NewReader([]byte{0xff})
	if _, err := r.ReadBits(33); !errors.Is(err, ErrOverflow) {
		t.Fatalf("read width 33: err = %v, want ErrOverflow", err)
	}
}

func TestEndOfStream(t *testing.T) {
	r := NewReader([]byte{0xab})
	if _, err := r.ReadBits(8); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := r.ReadBits(1); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("err = %v, want ErrEndOfStream", err)
	}
	// Partial remainder: 12 bits left, ask for 16.
	r = NewReader([]byte{0x12, 0x34})
	r.ReadBits(4)
	if _, err := r.ReadBits(16); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("short read err = %v, want ErrEndOfStream", err)
	}
}

func TestAlignToByte(t *testing.T) {
	w := NewWriter(0)
	w.WriteBits(1, 1)
	w.AlignToByte()
	w.WriteBits(0xff, 8)
	got := w.Bytes()
	want := []byte{0x01, 0xff}
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes = %#x, want %#x", got, want)
	}

	r := NewReader(got)
	r.ReadBits(1)
	r.AlignToByte()
	v, err := r.ReadBits(8)
	if err != nil || v != 0xff {
		t.Fatalf("after align: v = %#x, err = %v", v, err)
	}
	// Aligning an already-aligned stream is a no-op.
	r.AlignToByte()
	if r.BitPosition() != 16 {
		t.Fatalf("BitPosition = %d, want 16", r.BitPosition())
	}
}

func TestBitPosition(t *testing.T) {
	w := NewWriter(0)
	if w.BitPosition() != 0 {
		t.Fatalf("fresh writer position = %d", w.BitPosition())
	}
	w.WriteBits(0, 13)
	if w.BitPosition() != 13 {
		t.Fatalf("position = %d, want 13", w.BitPosition())
	}
	w.AlignToByte()
	if w.BitPosition() != 16 {
		t.Fatalf("aligned position = %d, want 16", w.BitPosition())
	}
}

func TestWriteReadBytes(t *testing.T) {
	w := NewWriter(0)
	w.WriteBits(0x5, 3)
	w.AlignToByte()
	payload := []byte{1, 2, 3, 4}
	if err := w.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	r := NewReader(w.Bytes())
	r.ReadBits(3)
	r.AlignToByte()
	got, err := r.ReadBytes(4)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %v, want %v", got, payload)
	}
	if _, err := r.ReadBytes(1); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("past-end ReadBytes err = %v, want ErrEndOfStream", err)
	}
}

func TestWriteBytesUnaligned(t *testing.T) {
	w := NewWriter(0)
	w.WriteBits(1, 1)
	if err := w.WriteBytes([]byte{0}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("unaligned WriteBytes err = %v, want ErrOverflow", err)
	}
}
