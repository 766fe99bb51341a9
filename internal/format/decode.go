package format

import (
	"fmt"

	"goasterix/internal/codec"
)

// Decode interprets buf at offset according to f and returns the value together
// with the number of bytes consumed.
func (f *Format) Decode(buf []byte, offset int) (Value, int, error) {
	switch f.Type {
	case TypeFixed:
		return f.decodeFixed(buf, offset)
	case TypeVariable:
		return f.decodeVariable(buf, offset)
	case TypeCompound:
		return f.decodeCompound(buf, offset)
	case TypeRepetitive:
		return f.decodeRepetitive(buf, offset)
	case TypeExplicit:
		return f.decodeExplicit(buf, offset)
	default:
		return Value{}, 0, fmt.Errorf("%w: unknown format %s", codec.ErrMalformed, f.Type)
	}
}

func (f *Format) decodeFixed(buf []byte, offset int) (Value, int, error) {
	if err := codec.Need(buf, offset, f.Length); err != nil {
		return Value{}, 0, err
	}
	block := buf[offset : offset+f.Length]

	fields := make([]Field, 0, len(f.Fields))
	for _, s := range f.Fields {
		if !s.data() {
			continue
		}
		if f.Scalar {
			return s.decode(block), f.Length, nil
		}
		fields = append(fields, F(s.Name, s.decode(block)))
	}
	return Group(fields...), f.Length, nil
}

func (s Subfield) decode(block []byte) Value {
	switch s.Enc {
	case Text6:
		return Text(codec.DecodeText6(block, s.Offset, s.Width/6))
	case ASCII:
		return Text(codec.DecodeASCII(block, s.Offset, s.Width/8))
	}

	raw := codec.Bits(block, s.Offset, s.Width)
	n := int64(raw)
	if s.Enc == Signed {
		n = codec.SignExtend(raw, s.Width)
	}
	if s.LSB != 0 {
		return Float(codec.Scale(n, s.LSB))
	}
	return Int(n)
}

func (f *Format) decodeVariable(buf []byte, offset int) (Value, int, error) {
	var fields []Field
	var items []Value

	pos := offset
	for i := 0; ; i++ {
		ext := f.extentAt(i)
		if ext == nil {
			return Value{}, 0, fmt.Errorf("%w: extension %d at offset %d beyond %d declared extents",
				codec.ErrMalformed, i+1, pos, len(f.Extents))
		}

		v, n, err := ext.decodeFixed(buf, pos)
		if err != nil {
			return Value{}, 0, fmt.Errorf("extent %d: %w", i+1, err)
		}
		if f.Repeat {
			items = append(items, v)
		} else {
			fields = append(fields, v.Fields...)
		}

		pos += n
		if buf[pos-1]&0x01 == 0 {
			break
		}
	}

	if f.Repeat {
		return List(items...), pos - offset, nil
	}
	return Group(fields...), pos - offset, nil
}

func (f *Format) extentAt(i int) *Format {
	if f.Repeat {
		return f.Extents[0]
	}
	if i < len(f.Extents) {
		return f.Extents[i]
	}
	return nil
}

func (f *Format) decodeCompound(buf []byte, offset int) (Value, int, error) {
	present := make([]bool, len(f.Subitems))

	pos := offset
	for k := 0; ; k++ {
		if k == codec.MaxFSPECOctets {
			return Value{}, 0, fmt.Errorf("%w: compound primary longer than %d octets", codec.ErrMalformed, codec.MaxFSPECOctets)
		}
		if err := codec.Need(buf, pos, 1); err != nil {
			return Value{}, 0, fmt.Errorf("compound primary: %w", err)
		}

		octet := buf[pos]
		pos++
		for bit := 7; bit >= 1; bit-- {
			if octet&(1<<uint(bit)) == 0 {
				continue
			}
			idx := k*7 + 7 - bit
			if idx >= len(f.Subitems) || f.Subitems[idx].Format == nil {
				return Value{}, 0, fmt.Errorf("%w: compound primary flags undeclared subfield %d at offset %d",
					codec.ErrMalformed, idx+1, pos-1)
			}
			present[idx] = true
		}
		if octet&0x01 == 0 {
			break
		}
	}

	var fields []Field
	for idx, sub := range f.Subitems {
		if !present[idx] {
			continue
		}
		v, n, err := sub.Format.Decode(buf, pos)
		if err != nil {
			return Value{}, 0, fmt.Errorf("subfield %s: %w", sub.Name, err)
		}
		fields = append(fields, F(sub.Name, v))
		pos += n
	}
	return Group(fields...), pos - offset, nil
}

func (f *Format) decodeRepetitive(buf []byte, offset int) (Value, int, error) {
	if err := codec.Need(buf, offset, 1); err != nil {
		return Value{}, 0, fmt.Errorf("repetition count: %w", err)
	}
	rep := int(buf[offset])
	size := f.Element.Length
	if err := codec.Need(buf, offset+1, rep*size); err != nil {
		return Value{}, 0, fmt.Errorf("%d repetitions of %d bytes: %w", rep, size, err)
	}

	items := make([]Value, 0, rep)
	pos := offset + 1
	for i := 0; i < rep; i++ {
		v, n, err := f.Element.decodeFixed(buf, pos)
		if err != nil {
			return Value{}, 0, err
		}
		items = append(items, v)
		pos += n
	}
	return List(items...), pos - offset, nil
}

func (f *Format) decodeExplicit(buf []byte, offset int) (Value, int, error) {
	if err := codec.Need(buf, offset, 1); err != nil {
		return Value{}, 0, fmt.Errorf("explicit length: %w", err)
	}
	length := int(buf[offset])
	if length < 1 {
		return Value{}, 0, fmt.Errorf("%w: explicit length 0 at offset %d", codec.ErrMalformed, offset)
	}
	if err := codec.Need(buf, offset, length); err != nil {
		return Value{}, 0, fmt.Errorf("explicit payload: %w", err)
	}

	payload := buf[offset+1 : offset+length]
	if f.Inner == nil {
		return Bytes(payload), length, nil
	}

	v, n, err := f.Inner.Decode(payload, 0)
	if err != nil {
		return Value{}, 0, fmt.Errorf("explicit payload: %w", err)
	}
	if n != len(payload) {
		return Value{}, 0, fmt.Errorf("%w: explicit payload of %d bytes, nested format consumed %d",
			codec.ErrMalformed, len(payload), n)
	}
	return v, length, nil
}
