package rans

// stateLow is the lower bound of the coder's state interval, Total squared.
// The encoder keeps the state in [stateLow, stateLow*256): the renorm
// threshold f[s] << RenormShift (= f*Total*256) maps the interval through
// the symbol step exactly, which is what makes byte-at-a-time emission and
// refill agree between the two sides. The encoder starts at the bound and
// the decoder drains back to it.
const stateLow = uint32(Total) * uint32(Total)

// Encode entropy-codes symbols under d and returns the byte stream the
// decoder consumes front to back.
//
// Symbols are folded into the state in reverse order, so the decoder emits
// them in forward order. Renormalization writes one byte whenever the state
// reaches f[s] << RenormShift; the threshold is f[s]*Total*256 exactly.
// After the last (first-position) symbol the four state bytes are appended
// most-significant first and the whole buffer is reversed, turning the LIFO
// encode order into the FIFO order the decoder reads.
func Encode(symbols []uint16, d *Distribution) ([]byte, error) {
	// Worst case: every symbol renormalizes twice, plus the state flush.
	out := make([]byte, 0, len(symbols)*2+4)
	x := stateLow
	for i := len(symbols) - 1; i >= 0; i-- {
		s := int(symbols[i])
		if s >= len(d.freqs) || d.freqs[s] == 0 {
			return nil, ErrSymbolOutOfRange
		}
		f := d.freqs[s]
		for uint64(x) >= uint64(f)<<RenormShift {
			out = append(out, byte(x))
			x >>= 8
		}
		x = (x/f)*Total + x%f + d.cum[s]
	}
	out = append(out, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	reverse(out)
	return out, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
