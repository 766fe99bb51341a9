package format

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the case of a Value.
type Kind uint8

// Value kinds
const (
	KindInvalid Kind = iota
	KindInt          // raw integer, flags and codes
	KindFloat        // scaled physical value
	KindText         // decoded characters
	KindBytes        // opaque payload
	KindGroup        // named subfields in declared order
	KindList         // repeated elements
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindGroup:
		return "group"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a decoded data item or subfield. Description is presentation only and
// never takes part in Equal.
type Value struct {
	Kind        Kind
	Int         int64
	Float       float64
	Text        string
	Bytes       []byte
	Fields      []Field
	Items       []Value
	Description string
}

// Field is one named member of a group value.
type Field struct {
	Name  string
	Value Value
}

// Int returns an integer value
func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }

// Float returns a physical value
func Float(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// Text returns a text value
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Bytes returns an opaque value holding a copy of b
func Bytes(b []byte) Value {
	return Value{Kind: KindBytes, Bytes: append([]byte(nil), b...)}
}

// Group returns a group of named fields
func Group(fields ...Field) Value { return Value{Kind: KindGroup, Fields: fields} }

// List returns a list of elements
func List(items ...Value) Value { return Value{Kind: KindList, Items: items} }

// F pairs a name with a value for Group
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.Kind != KindInvalid }

// Get returns the named field of a group.
func (v Value) Get(name string) (Value, bool) {
	if v.Kind != KindGroup {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Num returns the numeric content of an int or float value.
func (v Value) Num() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	}
	return 0, false
}

// Field returns the numeric content of the named field of a group.
func (v Value) Field(name string) (float64, bool) {
	f, ok := v.Get(name)
	if !ok {
		return 0, false
	}
	return f.Num()
}

// WithDescription returns v annotated with a human readable description.
func (v Value) WithDescription(desc string) Value {
	v.Description = desc
	return v
}

// Equal compares two values structurally, ignoring descriptions.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float || (math.IsNaN(v.Float) && math.IsNaN(o.Float))
	case KindText:
		return v.Text == o.Text
	case KindBytes:
		return bytes.Equal(v.Bytes, o.Bytes)
	case KindGroup:
		if len(v.Fields) != len(o.Fields) {
			return false
		}
		for i := range v.Fields {
			if v.Fields[i].Name != o.Fields[i].Name || !v.Fields[i].Value.Equal(o.Fields[i].Value) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// String renders the value compactly for logs and reports.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.Text)
	case KindBytes:
		return hex.EncodeToString(v.Bytes)
	case KindGroup:
		var b bytes.Buffer
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s:%s", f.Name, f.Value)
		}
		b.WriteByte('}')
		return b.String()
	case KindList:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(item.String())
		}
		b.WriteByte(']')
		return b.String()
	}
	return "<invalid>"
}

// MarshalJSON writes groups as objects in declared field order. A described scalar
// becomes {"value": ..., "description": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := v.writeJSON(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (v Value) writeJSON(b *bytes.Buffer) error {
	if v.Description != "" && v.Kind != KindGroup {
		b.WriteString(`{"value":`)
		bare := v
		bare.Description = ""
		if err := bare.writeJSON(b); err != nil {
			return err
		}
		b.WriteString(`,"description":`)
		writeString(b, v.Description)
		b.WriteByte('}')
		return nil
	}

	switch v.Kind {
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return fmt.Errorf("cannot encode %v as JSON", v.Float)
		}
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindText:
		writeString(b, v.Text)
	case KindBytes:
		writeString(b, hex.EncodeToString(v.Bytes))
	case KindGroup:
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, f.Name)
			b.WriteByte(':')
			if err := f.Value.writeJSON(b); err != nil {
				return err
			}
		}
		if v.Description != "" {
			if len(v.Fields) > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`"description":`)
			writeString(b, v.Description)
		}
		b.WriteByte('}')
	case KindList:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := item.writeJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		b.WriteString("null")
	}
	return nil
}

func writeString(b *bytes.Buffer, s string) {
	enc, _ := json.Marshal(s)
	b.Write(enc)
}
