package rans

import (
	"github.com/lamco-admin/jxl/internal/bitio"
)

// Payload framing shared by every entropy-coded section of a frame:
//
//	alphabet size A        16 bits
//	frequency table        A x 16 bits, normalized
//	symbol count N         32 bits
//	token stream length L  32 bits
//	token stream           L bytes
//	raw bits               remaining bytes, forward order
//
// The header fields are all multiples of 8 bits, so the token bytes start
// byte-aligned; the raw-bits tail begins immediately after them.

// maxPayloadSymbols bounds the symbol count a decoder will allocate for.
// A frame never carries more symbols per section than samples in a maximal
// image plane (2^24 * 64 coefficients would exceed the dimension cap first).
const maxPayloadSymbols = 1 << 30

// EncodePayload token-codes values into a self-describing payload blob.
func EncodePayload(values []uint32) ([]byte, error) {
	tokens := make([]uint16, len(values))
	alphabet := 1
	for i, v := range values {
		tok, _, _ := Split(v)
		tokens[i] = tok
		if int(tok)+1 > alphabet {
			alphabet = int(tok) + 1
		}
	}

	hist := make([]uint32, alphabet)
	for _, tok := range tokens {
		hist[tok]++
	}
	if len(values) == 0 {
		hist[0] = 1 // degenerate support so normalization holds
	}
	dist, err := Normalize(hist)
	if err != nil {
		return nil, err
	}

	tokenStream, err := Encode(tokens, dist)
	if err != nil {
		return nil, err
	}

	w := bitio.NewWriter(len(tokenStream) + 4*alphabet)
	w.WriteBits(uint32(alphabet), 16)
	for _, f := range dist.Freqs() {
		w.WriteBits(f, 16)
	}
	w.WriteBits(uint32(len(values)), 32)
	w.WriteBits(uint32(len(tokenStream)), 32)
	if err := w.WriteBytes(tokenStream); err != nil {
		return nil, err
	}
	for _, v := range values {
		_, nbits, raw := Split(v)
		if nbits > 0 {
			if err := w.WriteBits(raw, nbits); err != nil {
				return nil, err
			}
		}
	}
	return w.Bytes(), nil
}

// DecodePayload reverses EncodePayload.
func DecodePayload(data []byte) ([]uint32, error) {
	r := bitio.NewReader(data)
	alphabet, err := r.ReadBits(16)
	if err != nil {
		return nil, ErrTruncated
	}
	if alphabet == 0 || alphabet > MaxAlphabet {
		return nil, ErrAlphabetTooLarge
	}
	freqs := make([]uint32, alphabet)
	for i := range freqs {
		f, err := r.ReadBits(16)
		if err != nil {
			return nil, ErrTruncated
		}
		freqs[i] = f
	}
	dist, err := NewDistribution(freqs)
	if err != nil {
		return nil, err
	}
	n, err := r.ReadBits(32)
	if err != nil {
		return nil, ErrTruncated
	}
	if n > maxPayloadSymbols {
		return nil, ErrTruncated
	}
	l, err := r.ReadBits(32)
	if err != nil {
		return nil, ErrTruncated
	}
	if int(l) > r.Remaining()/8 {
		return nil, ErrTruncated
	}
	tokenStream, err := r.ReadBytes(int(l))
	if err != nil {
		return nil, ErrTruncated
	}
	tokens, err := DecodeAll(tokenStream, dist, int(n))
	if err != nil {
		return nil, err
	}

	values := make([]uint32, n)
	for i, tok := range tokens {
		nbits := RawBits(tok)
		if nbits == 0 {
			values[i] = uint32(tok)
			continue
		}
		raw, err := r.ReadBits(nbits)
		if err != nil {
			return nil, ErrTruncated
		}
		values[i] = Join(tok, raw)
	}
	return values, nil
}
