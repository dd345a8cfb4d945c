package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	bb.B = append(bb.B, []byte("hello")...)

	got := bb.Bytes()

	assert.Equal(t, []byte("hello"), got)
	assert.True(t, &bb.B[0] == &got[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	assert.Equal(t, 0, bb.Len(), "empty buffer should have zero length")

	bb.B = append(bb.B, []byte("test")...)
	assert.Equal(t, 4, bb.Len(), "buffer length should match data")

	bb.B = append(bb.B, []byte(" data")...)
	assert.Equal(t, 9, bb.Len(), "buffer length should update after append")
}

func TestByteBuffer_Cap(t *testing.T) {
	bb := NewByteBuffer(2048)
	assert.Equal(t, 2048, bb.Cap())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.B)

	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.B)
}

func TestByteBuffer_MustWrite_EmptyData(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	bb.MustWrite([]byte{})
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("data"))
	bb.MustWrite([]byte{})
	assert.Equal(t, []byte("data"), bb.B)
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.B)
}

func TestByteBuffer_Write_Multiple(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	n1, err1 := bb.Write([]byte("hello"))
	require.NoError(t, err1)
	assert.Equal(t, 5, n1)

	n2, err2 := bb.Write([]byte(" world"))
	require.NoError(t, err2)
	assert.Equal(t, 6, n2)

	assert.Equal(t, []byte("hello world"), bb.B)
	assert.Equal(t, 11, bb.Len())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	bb.B = append(bb.B, []byte("test data")...)

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())
}

func TestByteBuffer_WriteTo_EmptyBuffer(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, "", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	bb.B = append(bb.B, []byte("test")...)

	errorWriter := &errorWriter{err: io.ErrShortWrite}
	n, err := bb.WriteTo(errorWriter)

	assert.Error(t, err)
	assert.Equal(t, io.ErrShortWrite, err)
	assert.Equal(t, int64(0), n)
}

// =============================================================================
// ByteBuffer ExtendOrGrow Tests
// =============================================================================

func TestByteBuffer_ExtendOrGrow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	originalCap := cap(bb.B)

	start := bb.ExtendOrGrow(100)

	assert.Equal(t, 0, start)
	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
	assert.Equal(t, 100, bb.Len())
}

func TestByteBuffer_ExtendOrGrow_ForcesReallocation(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	bb.B = bb.B[:TagBufferDefaultSize] // fill to capacity

	start := bb.ExtendOrGrow(1024)

	assert.Equal(t, TagBufferDefaultSize, start)
	assert.GreaterOrEqual(t, cap(bb.B), TagBufferDefaultSize+1024, "should have at least requested capacity")
	assert.Equal(t, TagBufferDefaultSize+1024, bb.Len())
}

func TestByteBuffer_ExtendOrGrow_LargeBuffer(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	largeSize := 4*TagBufferDefaultSize + 1024
	bb.B = make([]byte, largeSize)

	bb.ExtendOrGrow(2048)

	assert.GreaterOrEqual(t, cap(bb.B), largeSize+2048, "should have at least requested capacity")
}

func TestByteBuffer_ExtendOrGrow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	testData := []byte("important data that must be preserved")
	bb.B = append(bb.B, testData...)

	bb.ExtendOrGrow(TagBufferDefaultSize * 2) // force reallocation

	assert.Equal(t, testData, bb.B[:len(testData)], "data should be preserved after growth")
}

func TestByteBuffer_ExtendOrGrow_ZeroBytes(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.ExtendOrGrow(0)

	assert.Equal(t, originalCap, cap(bb.B), "ExtendOrGrow(0) should not change capacity")
	assert.Equal(t, 0, bb.Len())
}

// =============================================================================
// Tag Pool Tests
// =============================================================================

func TestGetTagBuffer(t *testing.T) {
	bb := GetTagBuffer()

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, cap(bb.B), TagBufferDefaultSize, "pooled buffer should have at least default capacity")

	PutTagBuffer(bb)
}

func TestPutTagBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutTagBuffer(nil)
	})
}

func TestGetPutTagBuffer_Reuse(t *testing.T) {
	bb1 := GetTagBuffer()
	bb1.B = append(bb1.B, []byte("test data")...)
	capacity1 := cap(bb1.B)

	PutTagBuffer(bb1)

	bb2 := GetTagBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer from pool should be reset")

	if capacity1 == cap(bb2.B) {
		t.Log("buffer was likely reused from pool")
	}

	PutTagBuffer(bb2)
}

func TestTagPool_PutResetsData(t *testing.T) {
	bb := GetTagBuffer()
	bb.B = append(bb.B, []byte("sensitive data")...)

	PutTagBuffer(bb)

	assert.Equal(t, 0, len(bb.B), "PutTagBuffer should reset the buffer")
}

func TestTagPool_MultipleGetsAndPuts(t *testing.T) {
	buffers := make([]*ByteBuffer, 10)

	for i := range buffers {
		buffers[i] = GetTagBuffer()
		require.NotNil(t, buffers[i])
		buffers[i].MustWrite([]byte("data"))
	}

	for _, bb := range buffers {
		PutTagBuffer(bb)
	}

	for range 10 {
		bb := GetTagBuffer()
		assert.Equal(t, 0, bb.Len(), "each buffer should be reset")
		PutTagBuffer(bb)
	}
}

func TestTagPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numIterations = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetTagBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutTagBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(8192, 65536)

	require.NotNil(t, p)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192, "buffer should have at least default size")

	p.Put(bb)
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	tests := []struct {
		name         string
		defaultSize  int
		maxThreshold int
	}{
		{"Small pool", 1024, 4096},
		{"Medium pool", 16384, 131072},
		{"Large pool", 1048576, 8388608},
		{"No threshold", 8192, 0}, // 0 means no limit
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewByteBufferPool(tt.defaultSize, tt.maxThreshold)
			bb := p.Get()
			assert.GreaterOrEqual(t, cap(bb.B), tt.defaultSize)
			p.Put(bb)
		})
	}
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.ExtendOrGrow(10000) // beyond the 4096 threshold

	assert.Greater(t, cap(bb.B), 4096, "buffer should have grown beyond threshold")

	p.Put(bb)

	bb2 := p.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_MaxThreshold_Accept(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.MustWrite(make([]byte, 500)) // stays well below threshold
	capacity1 := cap(bb.B)

	p.Put(bb)

	bb2 := p.Get()
	if capacity1 <= 4096 && cap(bb2.B) == capacity1 {
		t.Log("buffer was reused (capacity matches and under threshold)")
	}
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	p := NewByteBufferPool(1024, 0) // 0 means no limit

	bb := p.Get()
	bb.ExtendOrGrow(1024 * 1024) // 1MB

	assert.Greater(t, cap(bb.B), 100000, "buffer should have grown to large size")

	p.Put(bb)

	bb2 := p.Get()
	assert.NotNil(t, bb2)
}

func TestPut_NilBuffer(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	assert.NotPanics(t, func() {
		p.Put(nil)
	})
}

// =============================================================================
// Chunk Pool Tests
// =============================================================================

func TestGetChunkBuffer(t *testing.T) {
	bb := GetChunkBuffer()

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "chunk buffer should be empty")
	assert.GreaterOrEqual(t, cap(bb.B), ChunkBufferDefaultSize, "chunk buffer should have at least default size")

	PutChunkBuffer(bb)
}

func TestPutChunkBuffer(t *testing.T) {
	bb := GetChunkBuffer()
	bb.MustWrite([]byte("test data"))

	assert.NotPanics(t, func() {
		PutChunkBuffer(bb)
	})

	assert.Equal(t, 0, len(bb.B), "PutChunkBuffer should reset the buffer")
}

func TestChunkBuffer_ReusePattern(t *testing.T) {
	bb1 := GetChunkBuffer()
	bb1.MustWrite(make([]byte, 500*1024)) // 500KB
	capacity1 := cap(bb1.B)

	PutChunkBuffer(bb1)

	bb2 := GetChunkBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer should be reset")

	if cap(bb2.B) == capacity1 {
		t.Log("chunk buffer was likely reused from pool")
	}
}

func TestChunkBuffer_MaxThreshold(t *testing.T) {
	bb := GetChunkBuffer()
	bb.ExtendOrGrow(5 * 1024 * 1024) // 5MB, beyond ChunkBufferMaxThreshold (4MB)

	assert.Greater(t, cap(bb.B), ChunkBufferMaxThreshold, "buffer should have grown beyond threshold")

	PutChunkBuffer(bb)

	bb2 := GetChunkBuffer()
	assert.LessOrEqual(t, cap(bb2.B), ChunkBufferMaxThreshold*2, "should not reuse overly large buffer")
}

func TestTagAndChunkPools_Independence(t *testing.T) {
	tagBuf := GetTagBuffer()
	tagCap := cap(tagBuf.B)

	chunkBuf := GetChunkBuffer()
	chunkCap := cap(chunkBuf.B)

	assert.NotEqual(t, tagCap, chunkCap, "tag and chunk buffers should have different default sizes")
	assert.GreaterOrEqual(t, tagCap, TagBufferDefaultSize)
	assert.GreaterOrEqual(t, chunkCap, ChunkBufferDefaultSize)

	PutTagBuffer(tagBuf)
	PutChunkBuffer(chunkBuf)
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestByteBuffer_LargeDataWrite(t *testing.T) {
	bb := GetChunkBuffer()
	defer PutChunkBuffer(bb)

	largeData := make([]byte, 1024*1024)
	for i := range largeData {
		largeData[i] = byte(i % 256)
	}

	bb.MustWrite(largeData)

	assert.Equal(t, len(largeData), bb.Len())
	assert.Equal(t, largeData, bb.B)
}

func TestByteBuffer_ExtendOrGrowAndWrite(t *testing.T) {
	bb := GetChunkBuffer()
	defer PutChunkBuffer(bb)

	start := bb.ExtendOrGrow(100 * 1024)
	bb.B = bb.B[:start] // undo the reservation, keep the grown capacity
	initialCap := cap(bb.B)

	data := make([]byte, 50*1024)
	bb.MustWrite(data)

	assert.Equal(t, initialCap, cap(bb.B))
	assert.Equal(t, 50*1024, bb.Len())
}

func TestByteBuffer_MultipleWritesCauseGrowth(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	initialCap := cap(bb.B)

	largeData := make([]byte, TagBufferDefaultSize+1000)
	bb.MustWrite(largeData)

	assert.Greater(t, cap(bb.B), initialCap, "buffer should have grown")
	assert.Equal(t, len(largeData), bb.Len())
}

func TestByteBuffer_ResetAndReuse(t *testing.T) {
	bb := GetTagBuffer()
	defer PutTagBuffer(bb)

	bb.MustWrite([]byte("first"))
	assert.Equal(t, 5, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("second"))
	assert.Equal(t, 6, bb.Len())
	assert.Equal(t, []byte("second"), bb.B)
}

// =============================================================================
// Benchmark Tests
// =============================================================================

func BenchmarkByteBuffer_Write(b *testing.B) {
	data := []byte("benchmark data for testing write performance")

	b.ResetTimer()
	for b.Loop() {
		bb := NewByteBuffer(TagBufferDefaultSize)
		_, _ = bb.Write(data)
	}
}

func BenchmarkByteBuffer_Write_Small(b *testing.B) {
	bb := GetTagBuffer()
	defer PutTagBuffer(bb)
	data := []byte("small data")

	b.ResetTimer()
	for b.Loop() {
		bb.Reset()
		bb.MustWrite(data)
	}
}

func BenchmarkByteBuffer_Write_Large(b *testing.B) {
	bb := GetChunkBuffer()
	defer PutChunkBuffer(bb)
	data := make([]byte, 64*1024) // 64KB

	b.ResetTimer()
	for b.Loop() {
		bb.Reset()
		bb.MustWrite(data)
	}
}

func BenchmarkByteBuffer_WriteTo(b *testing.B) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, 1024)...) // 1KB data

	b.ResetTimer()
	for b.Loop() {
		var buf bytes.Buffer
		_, _ = bb.WriteTo(&buf)
	}
}

func BenchmarkByteBuffer_ExtendOrGrow(b *testing.B) {
	b.ResetTimer()
	for b.Loop() {
		bb := NewByteBuffer(TagBufferDefaultSize)
		bb.ExtendOrGrow(1024 * 1024) // 1MB
	}
}

func BenchmarkGetPutTagBuffer_Reuse(b *testing.B) {
	for b.Loop() {
		bb := GetTagBuffer()
		bb.MustWrite([]byte("benchmark data"))
		PutTagBuffer(bb)
	}
}

func BenchmarkNewBuffer_NoPool(b *testing.B) {
	for b.Loop() {
		bb := NewByteBuffer(TagBufferDefaultSize)
		bb.MustWrite([]byte("benchmark data"))
		_ = bb
	}
}

func BenchmarkTagPool_GetPut(b *testing.B) {
	b.ResetTimer()
	for b.Loop() {
		bb := GetTagBuffer()
		PutTagBuffer(bb)
	}
}

func BenchmarkTagPool_GetWritePut(b *testing.B) {
	data := []byte("benchmark data")

	b.ResetTimer()
	for b.Loop() {
		bb := GetTagBuffer()
		bb.MustWrite(data)
		PutTagBuffer(bb)
	}
}

func BenchmarkTagPool_vs_NewBuffer(b *testing.B) {
	data := make([]byte, 1024)

	b.Run("WithPool", func(b *testing.B) {
		for b.Loop() {
			bb := GetTagBuffer()
			bb.MustWrite(data)
			PutTagBuffer(bb)
		}
	})

	b.Run("WithoutPool", func(b *testing.B) {
		for b.Loop() {
			bb := NewByteBuffer(TagBufferDefaultSize)
			bb.MustWrite(data)
		}
	})
}

func BenchmarkByteBuffer_LargeWrites(b *testing.B) {
	sizes := []int{
		1024,        // 1KB
		8192,        // 8KB
		64 * 1024,   // 64KB
		256 * 1024,  // 256KB
		1024 * 1024, // 1MB
	}

	for _, size := range sizes {
		data := make([]byte, size)
		b.Run(formatBytes(size), func(b *testing.B) {
			for b.Loop() {
				bb := GetChunkBuffer()
				bb.MustWrite(data)
				PutChunkBuffer(bb)
			}
		})
	}
}

// =============================================================================
// ByteBuffer vs Native Slice Comparison Benchmarks
// =============================================================================

func BenchmarkByteBuffer_vs_NativeSlice_SingleWrite(b *testing.B) {
	data := []byte("benchmark data for testing write performance")

	b.Run("ByteBuffer/Write", func(b *testing.B) {
		bb := NewByteBuffer(TagBufferDefaultSize)
		for b.Loop() {
			_, _ = bb.Write(data)
			bb.Reset()
		}
	})

	b.Run("ByteBuffer/MustWrite", func(b *testing.B) {
		bb := NewByteBuffer(TagBufferDefaultSize)
		for b.Loop() {
			bb.MustWrite(data)
			bb.Reset()
		}
	})

	b.Run("NativeSlice/Append", func(b *testing.B) {
		slice := make([]byte, 0, TagBufferDefaultSize)
		for b.Loop() {
			slice = append(slice, data...)
			slice = slice[:0]
		}
	})
}

func BenchmarkConcurrentGetPutTagBuffer(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			bb := GetTagBuffer()
			bb.MustWrite([]byte("concurrent test data"))
			PutTagBuffer(bb)
		}
	})
}

// =============================================================================
// Helper Types and Functions
// =============================================================================

// errorWriter is a writer that always returns an error.
type errorWriter struct {
	err error
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	return 0, ew.err
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(b int) string {
	const unit = 1024
	if b < unit {
		return bytesToString(b) + "B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return bytesToString(b/int(div)) + []string{"K", "M", "G"}[exp] + "B"
}

func bytesToString(n int) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return string(digits)
}
