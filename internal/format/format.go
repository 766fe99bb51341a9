package format

import "fmt"

// Type selects one of the five data item shapes.
type Type uint8

// Item shapes
const (
	TypeFixed      Type = iota + 1 // declared byte length
	TypeVariable                   // chain of fixed extents closed by FX = 0
	TypeCompound                   // primary presence bytes + optional subitems
	TypeRepetitive                 // REP count + fixed elements
	TypeExplicit                   // LEN byte + payload
)

// String returns the shape name
func (t Type) String() string {
	switch t {
	case TypeFixed:
		return "fixed"
	case TypeVariable:
		return "variable"
	case TypeCompound:
		return "compound"
	case TypeRepetitive:
		return "repetitive"
	case TypeExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Encoding says how the bits of a subfield are interpreted.
type Encoding uint8

// Subfield encodings
const (
	Unsigned  Encoding = iota
	Signed             // two's complement
	Text6              // packed 6-bit characters
	ASCII              // 8-bit characters
	Spare              // reserved bits, never decoded
	Extension          // FX bit owned by the enclosing format
)

// Subfield is a named run of bits inside a fixed block.
type Subfield struct {
	Name   string
	Offset int // bit offset from the most significant bit of the block
	Width  int // bits
	Enc    Encoding
	LSB    float64 // physical units per count, zero keeps the raw integer
	Unit   string
	Wrap   bool // encode by masking to Width instead of clamping
}

// U declares an unsigned subfield
func U(name string, bits int) Subfield {
	return Subfield{Name: name, Width: bits, Enc: Unsigned}
}

// S declares a two's-complement subfield
func S(name string, bits int) Subfield {
	return Subfield{Name: name, Width: bits, Enc: Signed}
}

// Pad declares spare bits
func Pad(bits int) Subfield {
	return Subfield{Width: bits, Enc: Spare}
}

// Chars6 declares n packed 6-bit characters
func Chars6(name string, n int) Subfield {
	return Subfield{Name: name, Width: 6 * n, Enc: Text6}
}

// Chars declares n 8-bit characters
func Chars(name string, n int) Subfield {
	return Subfield{Name: name, Width: 8 * n, Enc: ASCII}
}

// Scaled sets the LSB and unit of a numeric subfield.
func (s Subfield) Scaled(lsb float64, unit string) Subfield {
	s.LSB = lsb
	s.Unit = unit
	return s
}

// Wrapping makes the encoder reduce values modulo the field width.
func (s Subfield) Wrapping() Subfield {
	s.Wrap = true
	return s
}

func (s Subfield) data() bool {
	return s.Enc != Spare && s.Enc != Extension
}

// Subitem is one declared position of a compound primary.
// A nil Format marks a spare position.
type Subitem struct {
	Name   string
	Format *Format
}

// Sub declares a compound subitem
func Sub(name string, f *Format) Subitem {
	return Subitem{Name: name, Format: f}
}

// SpareSub declares an unused compound position
func SpareSub() Subitem {
	return Subitem{}
}

// Format is a node of the recursive item layout tree.
type Format struct {
	Type     Type
	Length   int        // Fixed: bytes
	Fields   []Subfield // Fixed
	Scalar   bool       // Fixed: decode to the single data subfield
	Extents  []*Format  // Variable
	Repeat   bool       // Variable: every extent uses Extents[0] and decodes to a list
	Subitems []Subitem  // Compound, in primary bit order
	Element  *Format    // Repetitive
	Inner    *Format    // Explicit, nil for opaque payloads
}

// Fixed declares a fixed-length block. The subfields are laid out from the most
// significant bit and must fill whole bytes.
func Fixed(fields ...Subfield) *Format {
	laid, bits := layout(fields)
	if bits == 0 || bits%8 != 0 {
		panic(fmt.Sprintf("format: fixed layout of %d bits is not byte aligned", bits))
	}
	return &Format{Type: TypeFixed, Length: bits / 8, Fields: laid}
}

// Scalar declares a fixed block holding one data subfield that decodes to a bare value.
func Scalar(fields ...Subfield) *Format {
	f := Fixed(fields...)
	if len(f.names()) != 1 {
		panic("format: scalar layout needs exactly one data subfield")
	}
	f.Scalar = true
	return f
}

// Variable declares an extensible item. Each extent lists its subfields without the
// trailing FX bit, which the format reserves.
func Variable(extents ...[]Subfield) *Format {
	if len(extents) == 0 {
		panic("format: variable item without extents")
	}
	f := &Format{Type: TypeVariable}
	for _, fields := range extents {
		f.Extents = append(f.Extents, extent(fields))
	}
	return f
}

// Repeating declares an extensible item whose extents all share one layout.
// Extents holding a single data subfield decode to bare values.
func Repeating(fields ...Subfield) *Format {
	ext := extent(fields)
	ext.Scalar = len(ext.names()) == 1
	return &Format{Type: TypeVariable, Extents: []*Format{ext}, Repeat: true}
}

// Compound declares an item with primary presence bytes.
func Compound(subitems ...Subitem) *Format {
	for _, s := range subitems {
		if s.Format != nil && s.Name == "" {
			panic("format: unnamed compound subitem")
		}
	}
	return &Format{Type: TypeCompound, Subitems: subitems}
}

// Repetitive declares REP fixed elements.
func Repetitive(element *Format) *Format {
	if element == nil || element.Type != TypeFixed {
		panic("format: repetitive element must be fixed")
	}
	return &Format{Type: TypeRepetitive, Element: element}
}

// Explicit declares a length-prefixed item. A nil inner format keeps the payload opaque.
func Explicit(inner *Format) *Format {
	return &Format{Type: TypeExplicit, Inner: inner}
}

func extent(fields []Subfield) *Format {
	fields = append(append([]Subfield(nil), fields...), Subfield{Name: "FX", Width: 1, Enc: Extension})
	return Fixed(fields...)
}

func layout(fields []Subfield) ([]Subfield, int) {
	laid := make([]Subfield, len(fields))
	bits := 0
	for i, s := range fields {
		if s.Width <= 0 || s.Width > 64 {
			panic(fmt.Sprintf("format: subfield %q has width %d", s.Name, s.Width))
		}
		if s.Enc == Text6 && s.Width%6 != 0 || s.Enc == ASCII && s.Width%8 != 0 {
			panic(fmt.Sprintf("format: text subfield %q has width %d", s.Name, s.Width))
		}
		if s.data() && s.Name == "" {
			panic("format: unnamed data subfield")
		}
		s.Offset = bits
		laid[i] = s
		bits += s.Width
	}
	return laid, bits
}

// names lists the data subfields of a fixed block.
func (f *Format) names() []string {
	var out []string
	for _, s := range f.Fields {
		if s.data() {
			out = append(out, s.Name)
		}
	}
	return out
}

// Subfield returns the declared subfield with the given name, searching fixed
// fields and variable extents.
func (f *Format) Subfield(name string) (Subfield, bool) {
	for _, s := range f.Fields {
		if s.Name == name && s.data() {
			return s, true
		}
	}
	for _, ext := range f.Extents {
		if s, ok := ext.Subfield(name); ok {
			return s, true
		}
	}
	return Subfield{}, false
}
