package asterix

import (
	"fmt"
	"sort"

	"goasterix/internal/codec"
	"goasterix/internal/format"
)

// Codec decodes and encodes one data item.
type Codec struct {
	Decode func(buf []byte, offset int, verbose bool) (format.Value, int, error)
	Encode func(v format.Value) ([]byte, error)
}

// Describer renders the verbose description of a decoded value.
type Describer func(v format.Value) string

// Item is one UAP entry.
type Item struct {
	FRN    int
	ID     string
	Name   string
	Format *format.Format
	Codec  Codec
}

// Define builds an item whose codec is interpreted from a layout. When verbose
// decoding is requested and describe is set, the decoded value carries its output.
func Define(frn int, id, name string, f *format.Format, describe Describer) Item {
	return Item{
		FRN:    frn,
		ID:     id,
		Name:   name,
		Format: f,
		Codec: Codec{
			Decode: func(buf []byte, offset int, verbose bool) (format.Value, int, error) {
				v, n, err := f.Decode(buf, offset)
				if err != nil {
					return format.Value{}, 0, err
				}
				if verbose && describe != nil {
					v = v.WithDescription(describe(v))
				}
				return v, n, nil
			},
			Encode: f.Encode,
		},
	}
}

// Schema is the immutable UAP of one category.
type Schema struct {
	category uint8
	name     string
	edition  string
	slots    []*Item
	byID     map[string]*Item
}

// NewSchema builds a category schema. It panics on duplicate FRNs or identifiers,
// which can only come from a faulty static table.
func NewSchema(category uint8, name, edition string, items ...Item) *Schema {
	s := &Schema{
		category: category,
		name:     name,
		edition:  edition,
		byID:     make(map[string]*Item, len(items)),
	}

	for i := range items {
		item := items[i]
		if item.FRN <= 0 || item.ID == "" || item.Codec.Decode == nil || item.Codec.Encode == nil {
			panic(fmt.Sprintf("asterix: CAT%03d has an incomplete item at FRN %d", category, item.FRN))
		}
		for len(s.slots) <= item.FRN {
			s.slots = append(s.slots, nil)
		}
		if s.slots[item.FRN] != nil {
			panic(fmt.Sprintf("asterix: CAT%03d FRN %d declared twice", category, item.FRN))
		}
		if _, dup := s.byID[item.ID]; dup {
			panic(fmt.Sprintf("asterix: CAT%03d item %s declared twice", category, item.ID))
		}
		s.slots[item.FRN] = &item
		s.byID[item.ID] = &item
	}
	return s
}

// Category returns the category number
func (s *Schema) Category() uint8 { return s.category }

// Name returns the category title
func (s *Schema) Name() string { return s.name }

// Edition returns the category edition the UAP follows
func (s *Schema) Edition() string { return s.edition }

// Item returns the entry mapped to frn.
func (s *Schema) Item(frn int) (Item, bool) {
	if frn <= 0 || frn >= len(s.slots) || s.slots[frn] == nil {
		return Item{}, false
	}
	return *s.slots[frn], true
}

// Lookup returns the entry with the given identifier.
func (s *Schema) Lookup(id string) (Item, bool) {
	item, ok := s.byID[id]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Items lists the entries in FRN order.
func (s *Schema) Items() []Item {
	out := make([]Item, 0, len(s.byID))
	for _, item := range s.slots {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}

// DecodeRecord decodes one record at offset and returns it with the number of bytes consumed.
func (s *Schema) DecodeRecord(buf []byte, offset int, verbose bool) (Record, int, error) {
	frns, n, err := codec.DecodeFSPEC(buf, offset)
	if err != nil {
		return Record{}, 0, fmt.Errorf("CAT%03d record at offset %d: %w", s.category, offset, err)
	}

	rec := Record{Category: s.category, Items: make([]DataItem, 0, len(frns))}
	pos := offset + n
	for _, frn := range frns {
		if frn >= len(s.slots) || s.slots[frn] == nil {
			return Record{}, 0, fmt.Errorf("%w: CAT%03d FRN %d at offset %d", codec.ErrUnmappedSlot, s.category, frn, pos)
		}
		item := s.slots[frn]

		v, m, err := item.Codec.Decode(buf, pos, verbose)
		if err != nil {
			return Record{}, 0, fmt.Errorf("CAT%03d %s (FRN %d) at offset %d: %w", s.category, item.ID, frn, pos, err)
		}
		rec.Items = append(rec.Items, DataItem{ID: item.ID, Value: v})
		pos += m
	}

	rec.Length = pos - offset
	return rec, rec.Length, nil
}

// EncodeRecord encodes the given items as one record, FSPEC first, items in FRN order.
func (s *Schema) EncodeRecord(items ...DataItem) ([]byte, error) {
	type slotted struct {
		item  *Item
		value format.Value
	}

	ordered := make([]slotted, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, di := range items {
		item, ok := s.byID[di.ID]
		if !ok {
			return nil, fmt.Errorf("%w: CAT%03d %s", codec.ErrUnknownItem, s.category, di.ID)
		}
		if seen[di.ID] {
			return nil, fmt.Errorf("%w: CAT%03d %s given twice", codec.ErrInvalidValue, s.category, di.ID)
		}
		seen[di.ID] = true
		ordered = append(ordered, slotted{item: item, value: di.Value})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].item.FRN < ordered[j].item.FRN })

	var body []byte
	frns := make([]int, 0, len(ordered))
	for _, o := range ordered {
		enc, err := o.item.Codec.Encode(o.value)
		if err != nil {
			return nil, fmt.Errorf("encode CAT%03d %s: %w", s.category, o.item.ID, err)
		}
		body = append(body, enc...)
		frns = append(frns, o.item.FRN)
	}
	return append(codec.EncodeFSPEC(frns), body...), nil
}
