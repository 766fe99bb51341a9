package codec

import (
	"errors"
	"fmt"
)

// Decode and encode failures. Every error returned by the codec packages wraps one
// of these so callers can classify it with errors.Is.
var (
	ErrTruncated        = errors.New("truncated input")
	ErrCategoryMismatch = errors.New("category mismatch")
	ErrUnmappedSlot     = errors.New("unmapped slot")
	ErrFraming          = errors.New("framing violation")
	ErrFSPECTooLong     = errors.New("fspec exceeds safety cap")
	ErrMalformed        = errors.New("malformed item")
	ErrUnknownItem      = errors.New("unknown item")
	ErrInvalidValue     = errors.New("invalid value")
)

// Truncated reports a read of need bytes at offset when only have bytes remain.
func Truncated(offset, need, have int) error {
	if have < 0 {
		have = 0
	}
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, need, offset, have)
}

// Need returns a truncation error unless buf holds n bytes starting at offset.
func Need(buf []byte, offset, n int) error {
	if offset < 0 || n < 0 || offset+n > len(buf) {
		return Truncated(offset, n, len(buf)-offset)
	}
	return nil
}
