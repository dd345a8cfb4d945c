// Package mutf8 implements Java's "modified UTF-8" (a CESU-8 variant) used
// by every NBT String tag.
//
// Differences from standard UTF-8:
//   - U+0000 is encoded as the two bytes 0xC0 0x80 instead of a single 0x00.
//   - Supplementary-plane code points (U+10000..U+10FFFF) are encoded as a
//     surrogate pair, each surrogate emitted as its own three-byte sequence,
//     rather than as a single four-byte UTF-8 sequence.
//   - Four-byte UTF-8 sequences never appear; encountering one is an error.
package mutf8

import (
	"strings"
	"unicode/utf16"

	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/internal/pool"
)

const (
	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

// DecodeASCIIFast is the fast path for the common case where data contains
// only 7-bit ASCII bytes 0x01..0x7F: it skips per-rune decoding and returns
// an owned copy of data as a string.
//
// It returns ok=false the instant it sees a byte >= 0x80 or a literal 0x00,
// signalling the caller to fall back to Decode. This mirrors the borrowed
// vs. escaped split the schema layer needs for zero-copy string targets
// (spec §4.2, BorrowUnavailable).
func DecodeASCIIFast(data []byte) (s string, ok bool) {
	for _, b := range data {
		if b == 0 || b >= 0x80 {
			return "", false
		}
	}

	return string(data), true
}

// Decode decodes a modified-UTF-8 byte sequence into a Go string (standard
// UTF-8 internally). Returns errs.ErrInvalidModifiedUtf8 on any malformed
// sequence, including bare 0x00 bytes and 4-byte UTF-8 lead bytes.
func Decode(data []byte) (string, error) {
	if s, ok := DecodeASCIIFast(data); ok {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(data))

	i := 0
	for i < len(data) {
		b0 := data[i]

		switch {
		case b0 == 0x00:
			return "", errs.ErrInvalidModifiedUtf8

		case b0 < 0x80:
			sb.WriteByte(b0)
			i++

		case b0&0xE0 == 0xC0: // 110xxxxx 10xxxxxx
			if i+1 >= len(data) || data[i+1]&0xC0 != 0x80 {
				return "", errs.ErrInvalidModifiedUtf8
			}
			r := rune(b0&0x1F)<<6 | rune(data[i+1]&0x3F)
			sb.WriteRune(r)
			i += 2

		case b0&0xF0 == 0xE0: // 1110xxxx 10xxxxxx 10xxxxxx
			if i+2 >= len(data) || data[i+1]&0xC0 != 0x80 || data[i+2]&0xC0 != 0x80 {
				return "", errs.ErrInvalidModifiedUtf8
			}
			unit := rune(b0&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
			i += 3

			if unit >= highSurrogateMin && unit <= highSurrogateMax && i+2 < len(data) {
				// Attempt to consume a following three-byte low-surrogate sequence.
				if data[i]&0xF0 == 0xE0 && data[i+1]&0xC0 == 0x80 && data[i+2]&0xC0 == 0x80 {
					low := rune(data[i]&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
					if low >= lowSurrogateMin && low <= lowSurrogateMax {
						sb.WriteRune(utf16.DecodeRune(unit, low))
						i += 3

						continue
					}
				}
			}

			sb.WriteRune(unit)

		default: // 4-byte UTF-8 lead byte (0xF0-0xF7) or stray continuation byte
			return "", errs.ErrInvalidModifiedUtf8
		}
	}

	return sb.String(), nil
}

// Encode encodes s as modified UTF-8. NUL is always written as 0xC0 0x80;
// supplementary code points are split into a surrogate pair, each emitted
// as a three-byte sequence.
func Encode(s string) []byte {
	buf := pool.GetTagBuffer()
	defer pool.PutTagBuffer(buf)

	for _, r := range s {
		appendRune(buf, r)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// AppendEncoded appends the modified-UTF-8 encoding of s to dst and returns
// the extended slice, without any intermediate allocation for s itself.
func AppendEncoded(dst []byte, s string) []byte {
	for _, r := range s {
		dst = appendRuneTo(dst, r)
	}

	return dst
}

func appendRune(buf *pool.ByteBuffer, r rune) {
	buf.B = appendRuneTo(buf.B, r)
}

func appendRuneTo(dst []byte, r rune) []byte {
	switch {
	case r == 0:
		return append(dst, 0xC0, 0x80)

	case r > 0 && r <= 0x7F:
		return append(dst, byte(r))

	case r <= 0x7FF:
		return append(dst,
			0xC0|byte(r>>6),
			0x80|byte(r&0x3F),
		)

	case r <= 0xFFFF:
		return appendThreeByte(dst, r)

	default:
		high, low := utf16.EncodeRune(r)
		dst = appendThreeByte(dst, high)
		dst = appendThreeByte(dst, low)

		return dst
	}
}

func appendThreeByte(dst []byte, r rune) []byte {
	return append(dst,
		0xE0|byte(r>>12),
		0x80|byte((r>>6)&0x3F),
		0x80|byte(r&0x3F),
	)
}

// EncodedLen returns the exact modified-UTF-8 byte length of s without
// allocating, used by the tag writer to size the u16 length prefix and by
// Writer.WriteString to enforce StringTooLong.
func EncodedLen(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r > 0 && r <= 0x7F:
			n++
		case r <= 0x7FF:
			n += 2
		case r <= 0xFFFF:
			n += 3
		default:
			n += 6
		}
	}

	return n
}
