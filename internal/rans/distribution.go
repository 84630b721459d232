// Package rans implements the adaptive range entropy coder used by the
// codestream: a table-driven asymmetric numeral system over alphabets of at
// most 512 symbols, plus the hybrid token layer that extends the effective
// alphabet to full 32-bit integers by splitting large values into an
// entropy-coded token and raw suffix bits.
package rans

import "errors"

const (
	// ScaleBits is log2 of the normalized frequency total.
	ScaleBits = 12
	// Total is the fixed power-of-two sum of normalized frequencies.
	Total = 1 << ScaleBits
	// RenormShift positions the encoder renormalization threshold at
	// f[s] * Total * 256. The byte-at-a-time renorm constant must be
	// exactly 2^8; any other value breaks encoder/decoder agreement.
	RenormShift = ScaleBits + 8
	// MaxAlphabet is the largest alphabet the coder accepts.
	MaxAlphabet = 512
)

// Errors returned by the entropy layer.
var (
	ErrInvalidDistribution = errors.New("rans: normalized frequencies do not sum to total")
	ErrSymbolOutOfRange    = errors.New("rans: symbol outside alphabet")
	ErrTruncated           = errors.New("rans: truncated stream")
	ErrAlphabetTooLarge    = errors.New("rans: alphabet exceeds 512 symbols")
)

// Distribution is a normalized symbol distribution together with the
// cumulative and slot-lookup tables the coder needs. Immutable once built.
type Distribution struct {
	freqs []uint32 // normalized frequencies, len = alphabet size
	cum   []uint32 // cum[i] = sum of freqs[:i], len = alphabet size + 1
	slots []uint16 // slot -> symbol reverse lookup, len = Total
}

// AlphabetSize returns the number of symbols (including zero-frequency ones).
func (d *Distribution) AlphabetSize() int { return len(d.freqs) }

// Freq returns the normalized frequency of symbol s.
func (d *Distribution) Freq(s int) uint32 { return d.freqs[s] }

// Freqs returns the normalized frequency table. Callers must not modify it.
func (d *Distribution) Freqs() []uint32 { return d.freqs }

// NewDistribution builds a Distribution from already-normalized frequencies.
// The frequencies must sum to exactly Total.
func NewDistribution(freqs []uint32) (*Distribution, error) {
	if len(freqs) == 0 || len(freqs) > MaxAlphabet {
		return nil, ErrAlphabetTooLarge
	}
	var sum uint64
	for _, f := range freqs {
		sum += uint64(f)
	}
	if sum != Total {
		return nil, ErrInvalidDistribution
	}
	d := &Distribution{
		freqs: append([]uint32(nil), freqs...),
		cum:   make([]uint32, len(freqs)+1),
		slots: make([]uint16, Total),
	}
	for i, f := range d.freqs {
		d.cum[i+1] = d.cum[i] + f
	}
	for s, f := range d.freqs {
		start := d.cum[s]
		for i := uint32(0); i < f; i++ {
			d.slots[start+i] = uint16(s)
		}
	}
	return d, nil
}

// Normalize converts a raw histogram into a Distribution whose frequencies
// sum to exactly Total, preserving the support: every symbol with a nonzero
// raw count keeps a normalized frequency of at least 1.
func Normalize(hist []uint32) (*Distribution, error) {
	if len(hist) == 0 || len(hist) > MaxAlphabet {
		return nil, ErrAlphabetTooLarge
	}
	var total uint64
	for _, h := range hist {
		total += uint64(h)
	}
	if total == 0 {
		return nil, ErrInvalidDistribution
	}

	freqs := make([]uint32, len(hist))
	var sum uint64
	for i, h := range hist {
		if h == 0 {
			continue
		}
		// Round half up; the correction passes below fix the residue.
		f := uint32((uint64(h)*Total + total/2) / total)
		freqs[i] = f
		sum += uint64(f)
	}

	// Promote rounded-to-zero support symbols, paying from the largest.
	for i, h := range hist {
		if h > 0 && freqs[i] == 0 {
			j := largest(freqs)
			if freqs[j] < 2 {
				return nil, ErrInvalidDistribution
			}
			freqs[j]--
			freqs[i] = 1
		}
	}
	sum = 0
	for _, f := range freqs {
		sum += uint64(f)
	}

	// Settle the remaining residue on the largest entry. The loop only
	// matters when a single correction would push the largest below 1.
	for sum != Total {
		j := largest(freqs)
		if sum < Total {
			add := uint32(Total - sum)
			freqs[j] += add
			sum += uint64(add)
		} else {
			over := uint64(sum - Total)
			take := uint64(freqs[j] - 1)
			if take > over {
				take = over
			}
			if take == 0 {
				return nil, ErrInvalidDistribution
			}
			freqs[j] -= uint32(take)
			sum -= take
		}
	}
	return NewDistribution(freqs)
}

// largest returns the index of the maximum frequency.
func largest(freqs []uint32) int {
	j := 0
	for i, f := range freqs {
		if f > freqs[j] {
			j = i
		}
	}
	return j
}
