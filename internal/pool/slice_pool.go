package pool

import "sync"

// intSlicePool reuses the []int scratch buffers section.View fills when it
// eagerly resolves a section's packed indices (section/section.go,
// NewView). A 16x16x16 block section has exactly 4096 entries; pooling
// avoids a fresh 4096-int allocation per section visited during a chunk
// walk.
var intSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetIntSlice retrieves a []int of length size from the pool.
//
// If the pooled slice has insufficient capacity, a new slice is allocated.
// The caller must call the returned cleanup function (typically via defer,
// or from a Close method as section.View does) to return the slice to the
// pool.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { intSlicePool.Put(ptr) }
}
