package tag

import (
	"math"

	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/internal/pool"
	"github.com/oakwood-mc/nbtcore/mutf8"
)

// Writer accumulates an NBT byte stream into a pooled, growable buffer. It
// is the mirror image of Reader; every Read* method on Reader except
// ReadRawName has a corresponding Write* method here.
//
// Writer is not safe for concurrent use. Call Finish to release the pooled
// buffer back once the returned bytes have been copied out or handed off.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter returns a Writer backed by a pooled scratch buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetTagBuffer()}
}

// Bytes returns the bytes written so far. The returned slice is only valid
// until the next Write call or until Finish is called.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Finish copies the accumulated bytes out to a freshly owned slice and
// returns the scratch buffer to the pool.
func (w *Writer) Finish() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	pool.PutTagBuffer(w.buf)
	w.buf = nil

	return out
}

func (w *Writer) append(b ...byte) {
	w.buf.MustWrite(b)
}

func (w *Writer) WriteTagID(id ID) {
	w.append(byte(id))
}

// WriteName writes a length-prefixed modified-UTF-8 name.
func (w *Writer) WriteName(name string) error {
	return w.writeMUtf8String(name)
}

// WriteString writes a length-prefixed modified-UTF-8 payload; same wire
// format as WriteName.
func (w *Writer) WriteString(s string) error {
	return w.writeMUtf8String(s)
}

func (w *Writer) writeMUtf8String(s string) error {
	n := mutf8.EncodedLen(s)
	if n > 0xFFFF {
		return errs.ErrStringTooLong
	}

	start := w.buf.ExtendOrGrow(2)
	engine.PutUint16(w.buf.B[start:], uint16(n))
	w.buf.B = mutf8.AppendEncoded(w.buf.B, s)

	return nil
}

func (w *Writer) WriteByte(v int8) {
	w.append(byte(v))
}

func (w *Writer) WriteShort(v int16) {
	start := w.buf.ExtendOrGrow(2)
	engine.PutUint16(w.buf.B[start:], uint16(v))
}

func (w *Writer) WriteInt(v int32) {
	start := w.buf.ExtendOrGrow(4)
	engine.PutUint32(w.buf.B[start:], uint32(v))
}

func (w *Writer) WriteLong(v int64) {
	start := w.buf.ExtendOrGrow(8)
	engine.PutUint64(w.buf.B[start:], uint64(v))
}

func (w *Writer) WriteFloat(v float32) {
	start := w.buf.ExtendOrGrow(4)
	engine.PutUint32(w.buf.B[start:], math.Float32bits(v))
}

func (w *Writer) WriteDouble(v float64) {
	start := w.buf.ExtendOrGrow(8)
	engine.PutUint64(w.buf.B[start:], math.Float64bits(v))
}

// WriteByteArray writes a ByteArray: i32 length then the raw bytes.
func (w *Writer) WriteByteArray(v []byte) {
	w.WriteInt(int32(len(v)))
	w.buf.MustWrite(v)
}

// WriteIntArray writes an IntArray: i32 length then length big-endian i32s.
func (w *Writer) WriteIntArray(v []int32) {
	w.WriteInt(int32(len(v)))
	start := w.buf.ExtendOrGrow(len(v) * 4)
	for i, n := range v {
		engine.PutUint32(w.buf.B[start+i*4:], uint32(n))
	}
}

// WriteLongArray writes a LongArray: i32 length then length big-endian i64s.
func (w *Writer) WriteLongArray(v []int64) {
	w.WriteInt(int32(len(v)))
	start := w.buf.ExtendOrGrow(len(v) * 8)
	for i, n := range v {
		engine.PutUint64(w.buf.B[start+i*8:], uint64(n))
	}
}

// WriteListHeader writes a List's element-id byte and i32 length; the
// caller is then responsible for writing length payloads of elem.
func (w *Writer) WriteListHeader(elem ID, length int) {
	w.WriteTagID(elem)
	w.WriteInt(int32(length))
}

// WriteEnd writes the End tag that terminates a Compound.
func (w *Writer) WriteEnd() {
	w.WriteTagID(End)
}
