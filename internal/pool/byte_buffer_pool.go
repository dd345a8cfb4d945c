// Package pool provides pooled growable byte buffers used by the tag writer,
// the modified-UTF-8 encoder, and region.Decompress, plus pooled []int
// scratch slices used by section.View, to avoid repeated allocation on hot
// paths.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for the two scratch-buffer tiers. Tag payloads
// (strings, small arrays) are tiny and plentiful; decompressed chunk
// documents are comparatively large and infrequent.
const (
	TagBufferDefaultSize   = 1024 * 4    // 4KiB, enough for the vast majority of NBT strings/payloads
	TagBufferMaxThreshold  = 1024 * 64   // 64KiB
	ChunkBufferDefaultSize = 1024 * 64   // 64KiB, a decompressed chunk document
	ChunkBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is a growable byte slice with amortized-growth semantics, sized
// for reuse via sync.Pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary, and
// returns the start offset of the newly extended region.
func (bb *ByteBuffer) ExtendOrGrow(n int) int {
	start := len(bb.B)
	available := cap(bb.B) - start
	if available < n {
		bb.grow(n)
	}
	bb.B = bb.B[:start+n]

	return start
}

// grow ensures the buffer can hold at least n more bytes without reallocating.
func (bb *ByteBuffer) grow(requiredBytes int) {
	growBy := TagBufferDefaultSize
	if cap(bb.B) > 4*TagBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	tagPool   = NewByteBufferPool(TagBufferDefaultSize, TagBufferMaxThreshold)
	chunkPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)
)

// GetTagBuffer retrieves a ByteBuffer from the default tag-scratch pool.
func GetTagBuffer() *ByteBuffer {
	return tagPool.Get()
}

// PutTagBuffer returns a ByteBuffer to the default tag-scratch pool.
func PutTagBuffer(bb *ByteBuffer) {
	tagPool.Put(bb)
}

// GetChunkBuffer retrieves a ByteBuffer from the default chunk-document pool.
func GetChunkBuffer() *ByteBuffer {
	return chunkPool.Get()
}

// PutChunkBuffer returns a ByteBuffer to the default chunk-document pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkPool.Put(bb)
}
