package block

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"goasterix/internal/asterix"
	"goasterix/internal/asterix/categories"
	"goasterix/internal/codec"
)

// Decoder decodes data blocks of one category
type Decoder struct {
	schema  *asterix.Schema
	verbose bool
	logger  *logrus.Logger
}

// NewDecoder creates a decoder. A nil schema accepts every supported category in
// DecodeStream; DecodeDatablock then requires one.
func NewDecoder(schema *asterix.Schema, verbose bool, logger *logrus.Logger) *Decoder {
	return &Decoder{
		schema:  schema,
		verbose: verbose,
		logger:  logger,
	}
}

// DecodeDatablock decodes the block at the start of buf and returns its records.
// Any record error aborts the whole block.
func (d *Decoder) DecodeDatablock(buf []byte) ([]asterix.Record, error) {
	if d.schema == nil {
		return nil, fmt.Errorf("%w: decoder has no category", codec.ErrCategoryMismatch)
	}
	records, _, err := d.decodeBlock(d.schema, buf, 0)
	return records, err
}

// DecodeMultipleBlocks decodes successive blocks until fewer than HeaderLen bytes remain.
func (d *Decoder) DecodeMultipleBlocks(buf []byte) ([]asterix.Record, error) {
	if d.schema == nil {
		return nil, fmt.Errorf("%w: decoder has no category", codec.ErrCategoryMismatch)
	}

	var all []asterix.Record
	for offset := 0; len(buf)-offset >= HeaderLen; {
		records, n, err := d.decodeBlock(d.schema, buf, offset)
		if err != nil {
			return all, err
		}
		all = append(all, records...)
		offset += n
	}
	return all, nil
}

func (d *Decoder) decodeBlock(schema *asterix.Schema, buf []byte, offset int) ([]asterix.Record, int, error) {
	h, err := d.header(buf, offset)
	if err != nil {
		return nil, 0, err
	}
	if h.Category != schema.Category() {
		return nil, 0, fmt.Errorf("%w: block at offset %d is CAT%03d, decoder expects CAT%03d",
			codec.ErrCategoryMismatch, offset, h.Category, schema.Category())
	}

	end := offset + h.Length
	bounded := buf[:end]

	var records []asterix.Record
	for pos := offset + HeaderLen; pos < end; {
		rec, n, err := schema.DecodeRecord(bounded, pos, d.verbose)
		if err != nil {
			return nil, 0, fmt.Errorf("record %d of block at offset %d: %w", len(records)+1, offset, err)
		}
		records = append(records, rec)
		pos += n
	}

	d.logger.WithFields(logrus.Fields{
		"category": h.Category,
		"length":   h.Length,
		"records":  len(records),
		"offset":   offset,
	}).Debug("Decoded data block")

	return records, h.Length, nil
}

func (d *Decoder) header(buf []byte, offset int) (Header, error) {
	h, err := ParseHeader(buf[offset:])
	if err != nil {
		return Header{}, fmt.Errorf("block at offset %d: %w", offset, err)
	}
	if offset+h.Length > len(buf) {
		return Header{}, fmt.Errorf("%w: CAT%03d block at offset %d declares %d bytes, %d remain",
			codec.ErrFraming, h.Category, offset, h.Length, len(buf)-offset)
	}
	return h, nil
}

// BlockError is a failure confined to one block of a stream.
type BlockError struct {
	Offset   int
	Category uint8
	Err      error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("CAT%03d block at offset %d: %v", e.Category, e.Offset, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Result is the outcome of decoding a mixed-category stream.
type Result struct {
	Blocks  int // blocks decoded successfully
	Skipped int // blocks of other categories when the decoder has a schema
	Records []asterix.Record
	Errors  []*BlockError
}

// DecodeStream decodes a stream of blocks of any supported category. A block that
// fails to decode is recorded in the result and decoding resumes at the next block.
// Framing errors end the stream and are returned.
func (d *Decoder) DecodeStream(buf []byte) (*Result, error) {
	res := &Result{}
	for offset := 0; len(buf)-offset >= HeaderLen; {
		h, err := d.header(buf, offset)
		if err != nil {
			return res, err
		}

		if d.schema != nil && h.Category != d.schema.Category() {
			d.logger.WithFields(logrus.Fields{
				"category": h.Category,
				"offset":   offset,
			}).Debug("Skipping block of another category")
			res.Skipped++
			offset += h.Length
			continue
		}

		schema, ok := categories.Lookup(h.Category)
		if !ok {
			d.fail(res, offset, h.Category, fmt.Errorf("%w: unsupported category", codec.ErrCategoryMismatch))
			offset += h.Length
			continue
		}

		records, _, err := d.decodeBlock(schema, buf, offset)
		if err != nil {
			d.fail(res, offset, h.Category, err)
			offset += h.Length
			continue
		}
		res.Blocks++
		res.Records = append(res.Records, records...)
		offset += h.Length
	}
	return res, nil
}

func (d *Decoder) fail(res *Result, offset int, category uint8, err error) {
	res.Errors = append(res.Errors, &BlockError{Offset: offset, Category: category, Err: err})

	d.logger.WithFields(logrus.Fields{
		"category": category,
		"offset":   offset,
	}).WithError(err).Warn("Skipping undecodable data block")
}
