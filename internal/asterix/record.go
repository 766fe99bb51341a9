package asterix

import (
	"bytes"
	"encoding/json"
	"fmt"

	"goasterix/internal/format"
)

// DataItem is one decoded or to-be-encoded data item.
type DataItem struct {
	ID    string
	Value format.Value
}

// Data pairs an item identifier with its value
func Data(id string, v format.Value) DataItem {
	return DataItem{ID: id, Value: v}
}

// Record is the result of decoding one record. Items keep FRN order.
type Record struct {
	Category uint8
	Length   int
	Items    []DataItem
}

// Get returns the value of an item.
func (r Record) Get(id string) (format.Value, bool) {
	for _, di := range r.Items {
		if di.ID == id {
			return di.Value, true
		}
	}
	return format.Value{}, false
}

// Has reports whether the record carries an item
func (r Record) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Field returns a numeric subfield of an item.
func (r Record) Field(id, name string) (float64, bool) {
	v, ok := r.Get(id)
	if !ok {
		return 0, false
	}
	return v.Field(name)
}

// Num returns the numeric value of a scalar item.
func (r Record) Num(id string) (float64, bool) {
	v, ok := r.Get(id)
	if !ok {
		return 0, false
	}
	return v.Num()
}

// Equal compares item values, ignoring descriptions and record length.
func (r Record) Equal(o Record) bool {
	if r.Category != o.Category || len(r.Items) != len(o.Items) {
		return false
	}
	for i := range r.Items {
		if r.Items[i].ID != o.Items[i].ID || !r.Items[i].Value.Equal(o.Items[i].Value) {
			return false
		}
	}
	return true
}

// String renders the record on one line
func (r Record) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "CAT%03d len=%d", r.Category, r.Length)
	for _, di := range r.Items {
		fmt.Fprintf(&b, " %s=%s", di.ID, di.Value)
	}
	return b.String()
}

// MarshalJSON writes {"category":48,"length":n,"items":{"I010":...}} with items in FRN order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, `{"category":%d,"length":%d,"items":{`, r.Category, r.Length)
	for i, di := range r.Items {
		if i > 0 {
			b.WriteByte(',')
		}
		id, _ := json.Marshal(di.ID)
		b.Write(id)
		b.WriteByte(':')
		v, err := di.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", di.ID, err)
		}
		b.Write(v)
	}
	b.WriteString("}}")
	return b.Bytes(), nil
}
