package container

// Parser walks the box sequence of a complete stream held in memory.
type Parser struct {
	boxes      []Box
	codestream []byte
}

// Parse validates the signature and collects the boxes. The mandatory
// layout is signature, ftyp, jxlc; any boxes after jxlc are retained but
// otherwise ignored. A box whose declared length overruns the buffer is
// reported as truncation.
func Parse(data []byte) (*Parser, error) {
	if len(data) < len(Signature) {
		return nil, ErrTruncated
	}
	for i, b := range Signature {
		if data[i] != b {
			return nil, ErrBadSignature
		}
	}
	p := &Parser{}
	rest := data[len(Signature):]
	for len(rest) > 0 {
		typ, size, err := ReadBoxHeader(rest)
		if err != nil {
			return nil, err
		}
		rest = rest[BoxHeaderSize:]
		if size > len(rest) {
			return nil, ErrTruncated
		}
		p.boxes = append(p.boxes, Box{Type: typ, Payload: rest[:size]})
		rest = rest[size:]
	}

	if len(p.boxes) == 0 || p.boxes[0].Type != TypeFtyp {
		return nil, ErrNoCodestream
	}
	ftyp := p.boxes[0].Payload
	if len(ftyp) < 4 || string(ftyp[:4]) != string(Brand[:]) {
		return nil, ErrBadBrand
	}
	for _, b := range p.boxes[1:] {
		if b.Type == TypeJxlc {
			p.codestream = b.Payload
			break
		}
	}
	if p.codestream == nil {
		return nil, ErrNoCodestream
	}
	return p, nil
}

// Codestream returns the jxlc box payload.
func (p *Parser) Codestream() []byte {
	return p.codestream
}

// Boxes returns every parsed box in stream order.
func (p *Parser) Boxes() []Box {
	return p.boxes
}
