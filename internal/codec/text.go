package codec

import "strings"

// text6Charset maps 6-bit codes to characters: A-Z at 1-26, space at 32, 0-9 at 48-57.
// Every other code decodes to '?'.
const text6Charset = "?ABCDEFGHIJKLMNOPQRSTUVWXYZ????? ???????????????0123456789??????"

const text6Space = 32

// Text6Char returns the character for a 6-bit code.
func Text6Char(code byte) byte {
	return text6Charset[code&0x3F]
}

// Text6Code returns the 6-bit code for c. Characters outside the alphabet encode as space.
func Text6Code(c byte) byte {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 1
	case c >= 'a' && c <= 'z':
		return c - 'a' + 1
	case c >= '0' && c <= '9':
		return c - '0' + 48
	default:
		return text6Space
	}
}

// DecodeText6 unpacks chars 6-bit characters from block starting at bit offset.
// Trailing and leading padding spaces are removed.
func DecodeText6(block []byte, offset, chars int) string {
	var sb strings.Builder
	sb.Grow(chars)
	for i := 0; i < chars; i++ {
		sb.WriteByte(Text6Char(byte(Bits(block, offset+i*6, 6))))
	}
	return strings.TrimSpace(sb.String())
}

// EncodeText6 packs s into block at bit offset as chars 6-bit characters, padding
// with spaces and truncating to fit.
func EncodeText6(block []byte, offset, chars int, s string) {
	for i := 0; i < chars; i++ {
		c := byte(' ')
		if i < len(s) {
			c = s[i]
		}
		SetBits(block, offset+i*6, 6, uint64(Text6Code(c)))
	}
}

// Text6 decodes an 8-character callsign packed into 6 bytes at offset.
func Text6(buf []byte, offset int) (string, error) {
	if err := Need(buf, offset, 6); err != nil {
		return "", err
	}
	return DecodeText6(buf[offset:offset+6], 0, 8), nil
}

// AppendText6 appends s as an 8-character 6-bit callsign.
func AppendText6(dst []byte, s string) []byte {
	block := make([]byte, 6)
	EncodeText6(block, 0, 8, s)
	return append(dst, block...)
}

// DecodeASCII reads chars 8-bit characters from block at bit offset. Non-printable
// bytes decode as '?', padding spaces are removed.
func DecodeASCII(block []byte, offset, chars int) string {
	var sb strings.Builder
	sb.Grow(chars)
	for i := 0; i < chars; i++ {
		c := byte(Bits(block, offset+i*8, 8))
		if c == 0 {
			c = ' '
		} else if c < 0x20 || c > 0x7E {
			c = '?'
		}
		sb.WriteByte(c)
	}
	return strings.TrimSpace(sb.String())
}

// EncodeASCII writes s into block at bit offset as chars 8-bit characters, padding
// with spaces. Non-printable characters encode as space.
func EncodeASCII(block []byte, offset, chars int, s string) {
	for i := 0; i < chars; i++ {
		c := byte(' ')
		if i < len(s) && s[i] >= 0x20 && s[i] <= 0x7E {
			c = s[i]
		}
		SetBits(block, offset+i*8, 8, uint64(c))
	}
}
