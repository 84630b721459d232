package jxl

import (
	"bytes"
	"testing"
)

func benchImage(b *testing.B, w, h int) *Image {
	b.Helper()
	img, err := NewImage(w, h, 3, 8)
	if err != nil {
		b.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			img.Pix[i+0] = uint16((x*3 + y) % 256)
			img.Pix[i+1] = uint16((x + y*2) % 256)
			img.Pix[i+2] = uint16((x ^ y) % 256)
		}
	}
	return img
}

func BenchmarkEncodeLossy(b *testing.B) {
	img := benchImage(b, 256, 256)
	opts := &Options{Quality: 75}
	b.SetBytes(int64(len(img.Pix) * 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := Encode(&buf, img, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeLossless(b *testing.B) {
	img := benchImage(b, 256, 256)
	opts := &Options{Lossless: true}
	b.SetBytes(int64(len(img.Pix) * 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := Encode(&buf, img, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeLossy(b *testing.B) {
	img := benchImage(b, 256, 256)
	var buf bytes.Buffer
	if err := Encode(&buf, img, &Options{Quality: 75}); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	b.SetBytes(int64(len(img.Pix) * 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeLossless(b *testing.B) {
	img := benchImage(b, 256, 256)
	var buf bytes.Buffer
	if err := Encode(&buf, img, &Options{Lossless: true}); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	b.SetBytes(int64(len(img.Pix) * 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
