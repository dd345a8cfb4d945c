package tag

import (
	"math"
	"unsafe"

	"github.com/oakwood-mc/nbtcore/endian"
	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/mutf8"
)

// engine is the fixed big-endian byte-order engine every NBT scalar read
// routes through. NBT itself never varies endianness, but keeping one
// EndianEngine seam here (instead of calling encoding/binary directly)
// means a caller who needs to parse an endian-swapped dump is a single
// field away, not a rewrite (spec §6 treats endianness as fixed, but the
// teacher's EndianEngine abstraction costs nothing to keep general).
var engine = endian.GetBigEndianEngine()

// Reader is a zero-copy cursor over an NBT byte stream. It never copies the
// input; scalar reads decode in place and array/string reads borrow a
// sub-slice of the input buffer whenever the payload allows it (spec §3,
// "Ownership & lifecycle").
//
// Reader is not safe for concurrent use.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for reading. The returned Reader borrows data; the
// caller must keep it alive for as long as any value produced by the Reader
// (or anything built from it) is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current byte offset, used by callers (the schema layer)
// to attach position context to errors via errs.AtOffset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.data) - r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.AtOffset(r.pos, errs.ErrInvalidLength)
	}
	if r.pos+n > len(r.data) {
		return nil, errs.AtOffset(r.pos, errs.ErrMalformed)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadTagID reads a single tag-id byte and validates it is in 0..12.
func (r *Reader) ReadTagID() (ID, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	id := ID(b[0])
	if !id.Valid() {
		return 0, errs.AtOffset(r.pos-1, errs.ErrInvalidTag)
	}

	return id, nil
}

// ReadName reads the length-prefixed modified-UTF-8 name that follows a tag
// id at the top level and inside a Compound (spec §4.1). An empty name
// (u16 length 0) decodes to "".
func (r *Reader) ReadName() (string, error) {
	return r.readMUtf8String()
}

func (r *Reader) readMUtf8String() (string, error) {
	lenBytes, err := r.take(2)
	if err != nil {
		return "", err
	}

	n := int(engine.Uint16(lenBytes))
	payload, err := r.take(n)
	if err != nil {
		return "", err
	}

	s, err := mutf8.Decode(payload)
	if err != nil {
		return "", errs.AtOffset(r.pos-n, err)
	}

	return s, nil
}

// ReadString reads a length-prefixed modified-UTF-8 payload; identical wire
// format to ReadName, exposed separately because String tags and names are
// conceptually distinct call sites in the schema layer.
func (r *Reader) ReadString() (string, error) {
	return r.readMUtf8String()
}

// ReadRawName reads a name's length-prefixed bytes without decoding them as
// modified UTF-8, returning a slice that borrows the Reader's backing
// array. The schema layer hashes these raw bytes for field dispatch
// (spec's field names are always plain ASCII, which is byte-identical
// under modified UTF-8) instead of allocating a string for every compound
// field, even ones that turn out to be unknown/skipped.
func (r *Reader) ReadRawName() ([]byte, error) {
	lenBytes, err := r.take(2)
	if err != nil {
		return nil, err
	}

	n := int(engine.Uint16(lenBytes))

	return r.take(n)
}

// BorrowASCIIString is the zero-copy path for ReadString: if the payload is
// pure ASCII with no embedded NUL, it returns a string that aliases the
// Reader's backing array directly. Otherwise it returns ok=false and
// rewinds the Reader to the start of the length prefix.
func (r *Reader) BorrowASCIIString() (s string, ok bool, err error) {
	start := r.pos
	lenBytes, err := r.take(2)
	if err != nil {
		return "", false, err
	}

	n := int(engine.Uint16(lenBytes))
	payload, err := r.take(n)
	if err != nil {
		return "", false, err
	}

	if _, ok := mutf8.DecodeASCIIFast(payload); ok {
		return unsafe.String(unsafe.SliceData(payload), n), true, nil
	}

	// Not borrowable: rewind and let the caller fall back to ReadString's
	// allocating decode of the same bytes.
	r.pos = start

	return "", false, nil
}

func (r *Reader) ReadByte() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return int8(b[0]), nil
}

func (r *Reader) ReadShort() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return int16(engine.Uint16(b)), nil
}

func (r *Reader) ReadInt() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return int32(engine.Uint32(b)), nil
}

func (r *Reader) ReadLong() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return int64(engine.Uint64(b)), nil
}

func (r *Reader) ReadFloat() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(engine.Uint32(b)), nil
}

func (r *Reader) ReadDouble() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(engine.Uint64(b)), nil
}

// readArrayLen reads the i32 length prefix shared by ByteArray/IntArray/
// LongArray/List and rejects negative lengths (spec §3: "Negative lengths
// are not permitted").
func (r *Reader) readArrayLen() (int, error) {
	n, err := r.ReadInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errs.AtOffset(r.pos-4, errs.ErrInvalidLength)
	}

	return int(n), nil
}

// ReadByteArray reads a ByteArray payload and returns a slice that borrows
// the Reader's backing array directly (zero-copy: single-byte elements need
// no endian conversion).
func (r *Reader) ReadByteArray() ([]byte, error) {
	n, err := r.readArrayLen()
	if err != nil {
		return nil, err
	}

	return r.take(n)
}

// ReadIntArray reads an IntArray payload, decoding each big-endian i32 into
// a freshly allocated, owned slice.
func (r *Reader) ReadIntArray() ([]int32, error) {
	n, err := r.readArrayLen()
	if err != nil {
		return nil, err
	}

	raw, err := r.take(n * 4)
	if err != nil {
		return nil, err
	}

	out := make([]int32, n)
	for i := range out {
		out[i] = int32(engine.Uint32(raw[i*4:]))
	}

	return out, nil
}

// ReadLongArray reads a LongArray payload, decoding each big-endian i64 into
// a freshly allocated, owned slice.
func (r *Reader) ReadLongArray() ([]int64, error) {
	n, err := r.readArrayLen()
	if err != nil {
		return nil, err
	}

	raw, err := r.take(n * 8)
	if err != nil {
		return nil, err
	}

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(engine.Uint64(raw[i*8:]))
	}

	return out, nil
}

// RawIntArrayBytes reads the raw n*4 big-endian bytes of an IntArray payload
// without decoding, borrowing the Reader's backing array. Used by
// BorrowIntArray (whose unsafe loan path serves the schema layer on
// big-endian hosts) and by Skip.
func (r *Reader) RawIntArrayBytes() (n int, raw []byte, err error) {
	n, err = r.readArrayLen()
	if err != nil {
		return 0, nil, err
	}

	raw, err = r.take(n * 4)

	return n, raw, err
}

// RawLongArrayBytes is RawIntArrayBytes's LongArray counterpart.
func (r *Reader) RawLongArrayBytes() (n int, raw []byte, err error) {
	n, err = r.readArrayLen()
	if err != nil {
		return 0, nil, err
	}

	raw, err = r.take(n * 8)

	return n, raw, err
}

// BorrowIntArray reads an IntArray payload, returning a slice that aliases
// the Reader's backing array directly (no per-element copy) when the host's
// native byte order is big-endian and the payload is 4-byte aligned;
// otherwise it falls back to the same allocating, byte-swapping decode
// ReadIntArray performs. borrowed reports which path was taken (spec §4.2,
// "Borrowed vs owned": "payloads may be loaned ... when the input's
// endianness matches the platform").
//
// A borrowed result aliases the Reader's input; the caller must keep that
// input alive for as long as the returned slice is used.
func (r *Reader) BorrowIntArray() (out []int32, borrowed bool, err error) {
	n, raw, err := r.RawIntArrayBytes()
	if err != nil {
		return nil, false, err
	}

	if endian.IsNativeBigEndian() && len(raw) > 0 && uintptr(unsafe.Pointer(&raw[0]))%4 == 0 {
		return unsafe.Slice((*int32)(unsafe.Pointer(&raw[0])), n), true, nil
	}

	out = make([]int32, n)
	for i := range out {
		out[i] = int32(engine.Uint32(raw[i*4:]))
	}

	return out, false, nil
}

// BorrowLongArray is BorrowIntArray's LongArray counterpart.
func (r *Reader) BorrowLongArray() (out []int64, borrowed bool, err error) {
	n, raw, err := r.RawLongArrayBytes()
	if err != nil {
		return nil, false, err
	}

	if endian.IsNativeBigEndian() && len(raw) > 0 && uintptr(unsafe.Pointer(&raw[0]))%8 == 0 {
		return unsafe.Slice((*int64)(unsafe.Pointer(&raw[0])), n), true, nil
	}

	out = make([]int64, n)
	for i := range out {
		out[i] = int64(engine.Uint64(raw[i*8:]))
	}

	return out, false, nil
}

// ReadListHeader reads a List tag's element-id byte and i32 length. Per
// spec §3, an element id of End is only valid when length <= 0.
func (r *Reader) ReadListHeader() (elem ID, length int, err error) {
	b, err := r.take(1)
	if err != nil {
		return 0, 0, err
	}
	elem = ID(b[0])

	n, err := r.ReadInt()
	if err != nil {
		return 0, 0, err
	}
	if n < 0 {
		return 0, 0, errs.AtOffset(r.pos-4, errs.ErrInvalidLength)
	}
	if elem == End && n > 0 {
		return 0, 0, errs.AtOffset(r.pos-5, errs.ErrMalformed)
	}
	if !elem.Valid() {
		return 0, 0, errs.AtOffset(r.pos-5, errs.ErrInvalidTag)
	}

	return elem, int(n), nil
}

// Skip consumes and discards one payload of the given tag kind without
// allocating beyond what decoding strings requires, the one-pass streaming
// discipline described in spec §4.2.
func (r *Reader) Skip(id ID) error {
	switch id {
	case End:
		return nil
	case Byte:
		_, err := r.take(1)
		return err
	case Short:
		_, err := r.take(2)
		return err
	case Int, Float:
		_, err := r.take(4)
		return err
	case Long, Double:
		_, err := r.take(8)
		return err
	case ByteArray:
		_, err := r.ReadByteArray()
		return err
	case String:
		_, err := r.ReadString()
		return err
	case List:
		elem, n, err := r.ReadListHeader()
		if err != nil {
			return err
		}
		for range n {
			if err := r.Skip(elem); err != nil {
				return err
			}
		}

		return nil
	case Compound:
		for {
			id, err := r.ReadTagID()
			if err != nil {
				return err
			}
			if id == End {
				return nil
			}
			if _, err := r.ReadName(); err != nil {
				return err
			}
			if err := r.Skip(id); err != nil {
				return err
			}
		}
	case IntArray:
		_, _, err := r.RawIntArrayBytes()
		return err
	case LongArray:
		_, _, err := r.RawLongArrayBytes()
		return err
	default:
		return errs.AtOffset(r.pos, errs.ErrInvalidTag)
	}
}
