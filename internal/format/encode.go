package format

import (
	"fmt"
	"math"

	"goasterix/internal/codec"
)

// Encode serializes v according to f. Group members that are absent encode as
// zero. Numeric members are clamped to their field range unless the subfield wraps.
func (f *Format) Encode(v Value) ([]byte, error) {
	switch f.Type {
	case TypeFixed:
		if !f.Scalar {
			if err := checkNames(v, f.names()); err != nil {
				return nil, err
			}
		}
		return f.encodeFixed(v)
	case TypeVariable:
		return f.encodeVariable(v)
	case TypeCompound:
		return f.encodeCompound(v)
	case TypeRepetitive:
		return f.encodeRepetitive(v)
	case TypeExplicit:
		return f.encodeExplicit(v)
	default:
		return nil, fmt.Errorf("%w: unknown format %s", codec.ErrInvalidValue, f.Type)
	}
}

func (f *Format) encodeFixed(v Value) ([]byte, error) {
	block := make([]byte, f.Length)
	for _, s := range f.Fields {
		if !s.data() {
			continue
		}

		fv := v
		if !f.Scalar {
			var ok bool
			if fv, ok = v.Get(s.Name); !ok {
				continue
			}
		}
		if err := s.encode(block, fv); err != nil {
			return nil, fmt.Errorf("subfield %s: %w", s.Name, err)
		}
	}
	return block, nil
}

func (s Subfield) encode(block []byte, v Value) error {
	switch s.Enc {
	case Text6, ASCII:
		if v.Kind != KindText {
			return fmt.Errorf("%w: want text, got %s", codec.ErrInvalidValue, v.Kind)
		}
		if s.Enc == Text6 {
			codec.EncodeText6(block, s.Offset, s.Width/6, v.Text)
		} else {
			codec.EncodeASCII(block, s.Offset, s.Width/8, v.Text)
		}
		return nil
	}

	signed := s.Enc == Signed
	if v.Kind == KindInt && s.LSB == 0 {
		n := v.Int
		if !s.Wrap {
			n = codec.Clamp(n, s.Width, signed)
		}
		codec.SetBits(block, s.Offset, s.Width, codec.Mask(n, s.Width))
		return nil
	}

	x, ok := v.Num()
	if !ok {
		return fmt.Errorf("%w: want number, got %s", codec.ErrInvalidValue, v.Kind)
	}

	var raw uint64
	switch {
	case s.LSB != 0 && s.Wrap:
		raw = codec.Wrap(x, s.LSB, s.Width)
	case s.LSB != 0:
		raw = codec.Mask(codec.Quantize(x, s.LSB, s.Width, signed), s.Width)
	case s.Wrap:
		raw = codec.Mask(int64(math.Trunc(x)), s.Width)
	default:
		raw = codec.Mask(codec.Quantize(x, 1, s.Width, signed), s.Width)
	}
	codec.SetBits(block, s.Offset, s.Width, raw)
	return nil
}

func (f *Format) encodeVariable(v Value) ([]byte, error) {
	if f.Repeat {
		return f.encodeRepeating(v)
	}

	var all []string
	for _, ext := range f.Extents {
		all = append(all, ext.names()...)
	}
	if err := checkNames(v, all); err != nil {
		return nil, err
	}

	need := 1
	for i, ext := range f.Extents {
		for _, name := range ext.names() {
			if _, ok := v.Get(name); ok {
				need = i + 1
			}
		}
	}

	var out []byte
	for i := 0; i < need; i++ {
		block, err := f.Extents[i].encodeFixed(v)
		if err != nil {
			return nil, fmt.Errorf("extent %d: %w", i+1, err)
		}
		if i < need-1 {
			block[len(block)-1] |= 0x01
		}
		out = append(out, block...)
	}
	return out, nil
}

func (f *Format) encodeRepeating(v Value) ([]byte, error) {
	items := v.Items
	switch v.Kind {
	case KindList:
	case KindInvalid:
		items = nil
	default:
		return nil, fmt.Errorf("%w: want list, got %s", codec.ErrInvalidValue, v.Kind)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: repeating item needs at least one element", codec.ErrInvalidValue)
	}

	var out []byte
	for i, item := range items {
		block, err := f.Extents[0].encodeFixed(item)
		if err != nil {
			return nil, fmt.Errorf("extent %d: %w", i+1, err)
		}
		if i < len(items)-1 {
			block[len(block)-1] |= 0x01
		}
		out = append(out, block...)
	}
	return out, nil
}

func (f *Format) encodeCompound(v Value) ([]byte, error) {
	var allowed []string
	for _, sub := range f.Subitems {
		if sub.Format != nil {
			allowed = append(allowed, sub.Name)
		}
	}
	if err := checkNames(v, allowed); err != nil {
		return nil, err
	}

	var body []byte
	last := -1
	present := make([]bool, len(f.Subitems))
	for idx, sub := range f.Subitems {
		if sub.Format == nil {
			continue
		}
		sv, ok := v.Get(sub.Name)
		if !ok {
			continue
		}
		enc, err := sub.Format.Encode(sv)
		if err != nil {
			return nil, fmt.Errorf("subfield %s: %w", sub.Name, err)
		}
		body = append(body, enc...)
		present[idx] = true
		last = idx
	}

	primary := make([]byte, last/7+1)
	if last < 0 {
		primary = make([]byte, 1)
	}
	for idx, ok := range present {
		if ok {
			primary[idx/7] |= 1 << uint(7-idx%7)
		}
	}
	for k := 0; k < len(primary)-1; k++ {
		primary[k] |= 0x01
	}
	return append(primary, body...), nil
}

func (f *Format) encodeRepetitive(v Value) ([]byte, error) {
	items := v.Items
	switch v.Kind {
	case KindList:
	case KindInvalid:
		items = nil
	default:
		return nil, fmt.Errorf("%w: want list, got %s", codec.ErrInvalidValue, v.Kind)
	}
	if len(items) > 255 {
		return nil, fmt.Errorf("%w: %d repetitions exceed 255", codec.ErrInvalidValue, len(items))
	}

	out := []byte{byte(len(items))}
	for i, item := range items {
		if !f.Element.Scalar {
			if err := checkNames(item, f.Element.names()); err != nil {
				return nil, err
			}
		}
		block, err := f.Element.encodeFixed(item)
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", i+1, err)
		}
		out = append(out, block...)
	}
	return out, nil
}

func (f *Format) encodeExplicit(v Value) ([]byte, error) {
	var payload []byte
	if f.Inner == nil {
		if v.Kind != KindBytes {
			return nil, fmt.Errorf("%w: want bytes, got %s", codec.ErrInvalidValue, v.Kind)
		}
		payload = v.Bytes
	} else {
		var err error
		if payload, err = f.Inner.Encode(v); err != nil {
			return nil, err
		}
	}
	if len(payload)+1 > 255 {
		return nil, fmt.Errorf("%w: explicit payload of %d bytes exceeds 254", codec.ErrInvalidValue, len(payload))
	}
	return append([]byte{byte(len(payload) + 1)}, payload...), nil
}

// checkNames rejects group members the layout does not declare.
func checkNames(v Value, allowed []string) error {
	if v.Kind != KindGroup {
		return fmt.Errorf("%w: want group, got %s", codec.ErrInvalidValue, v.Kind)
	}
	for _, f := range v.Fields {
		found := false
		for _, name := range allowed {
			if f.Name == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: undeclared subfield %q", codec.ErrInvalidValue, f.Name)
		}
	}
	return nil
}
