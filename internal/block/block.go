// Package block frames ASTERIX records into data blocks and decodes block streams.
package block

import (
	"encoding/binary"
	"fmt"

	"goasterix/internal/codec"
)

// Block envelope sizes
const (
	HeaderLen = 3
	MaxLen    = 0xFFFF
)

// Header is the category and declared length of a data block.
type Header struct {
	Category uint8
	Length   int // includes the header itself
}

// ParseHeader reads the block header at the start of buf.
func ParseHeader(buf []byte) (Header, error) {
	if err := codec.Need(buf, 0, HeaderLen); err != nil {
		return Header{}, fmt.Errorf("block header: %w", err)
	}
	h := Header{
		Category: buf[0],
		Length:   int(binary.BigEndian.Uint16(buf[1:3])),
	}
	if h.Length < HeaderLen {
		return Header{}, fmt.Errorf("%w: CAT%03d declared length %d shorter than its header", codec.ErrFraming, h.Category, h.Length)
	}
	return h, nil
}

// Encode wraps encoded records in a data block of the given category.
func Encode(category uint8, records ...[]byte) ([]byte, error) {
	length := HeaderLen
	for _, r := range records {
		length += len(r)
	}
	if length > MaxLen {
		return nil, fmt.Errorf("%w: CAT%03d block of %d bytes exceeds %d", codec.ErrFraming, category, length, MaxLen)
	}

	out := make([]byte, HeaderLen, length)
	out[0] = category
	binary.BigEndian.PutUint16(out[1:3], uint16(length))
	for _, r := range records {
		out = append(out, r...)
	}
	return out, nil
}

// Split cuts a concatenation of blocks into one slice per block. Trailing bytes
// shorter than a header are ignored.
func Split(buf []byte) ([][]byte, error) {
	var blocks [][]byte
	for offset := 0; len(buf)-offset >= HeaderLen; {
		h, err := ParseHeader(buf[offset:])
		if err != nil {
			return blocks, fmt.Errorf("block at offset %d: %w", offset, err)
		}
		if offset+h.Length > len(buf) {
			return blocks, fmt.Errorf("%w: CAT%03d block at offset %d declares %d bytes, %d remain",
				codec.ErrFraming, h.Category, offset, h.Length, len(buf)-offset)
		}
		blocks = append(blocks, buf[offset:offset+h.Length])
		offset += h.Length
	}
	return blocks, nil
}

// Pack frames records into as few blocks as the length limit allows and returns
// their concatenation.
func Pack(category uint8, records [][]byte) ([]byte, error) {
	var out []byte
	var batch [][]byte
	size := HeaderLen

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		b, err := Encode(category, batch...)
		if err != nil {
			return err
		}
		out = append(out, b...)
		batch, size = nil, HeaderLen
		return nil
	}

	for i, r := range records {
		if HeaderLen+len(r) > MaxLen {
			return nil, fmt.Errorf("%w: CAT%03d record %d of %d bytes cannot fit a block", codec.ErrFraming, category, i+1, len(r))
		}
		if size+len(r) > MaxLen {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		batch = append(batch, r)
		size += len(r)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}
