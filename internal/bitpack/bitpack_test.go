package bitpack

import (
	"iter"
	"testing"

	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, seq iter.Seq[int]) []int {
	t.Helper()

	var out []int
	seq(func(v int) bool {
		out = append(out, v)
		return true
	})

	return out
}

func TestBitsPerIndex(t *testing.T) {
	assert.Equal(t, 4, BitsPerIndex(1, 4))
	assert.Equal(t, 4, BitsPerIndex(16, 4))
	assert.Equal(t, 5, BitsPerIndex(17, 4))
	assert.Equal(t, 1, BitsPerIndex(1, 1))
	assert.Equal(t, 1, BitsPerIndex(2, 1))
	assert.Equal(t, 2, BitsPerIndex(3, 1))
}

func TestVariantForDataVersion(t *testing.T) {
	assert.Equal(t, Compact, VariantForDataVersion(1343))
	assert.Equal(t, Aligned, VariantForDataVersion(2529))
	assert.Equal(t, Aligned, VariantForDataVersion(3700))
}

func TestUnpackSingleEntryPalette(t *testing.T) {
	seq, err := Unpack(nil, 4, 4096, Aligned)
	require.NoError(t, err)

	out := collect(t, seq)
	require.Len(t, out, 4096)
	for _, v := range out {
		assert.Equal(t, 0, v)
	}
}

func TestUnpackAlignedNonStraddling(t *testing.T) {
	// B=4, slots_per_word=16: word 0 packs indices 0..15 as nibbles,
	// little-endian slot order (lowest bits = index 0).
	var word uint64
	for i := range 16 {
		word |= uint64(i&0xF) << (uint(i) * 4)
	}

	seq, err := Unpack([]int64{int64(word)}, 4, 16, Aligned)
	require.NoError(t, err)

	out := collect(t, seq)
	require.Len(t, out, 16)
	for i, v := range out {
		assert.Equal(t, i, v)
	}
}

func TestUnpackCompactStraddle(t *testing.T) {
	// B=5, index 12 starts at bit 60 and straddles into word 1.
	// Put value 0x0A (0b01010) so bit 60..63 holds its low 4 bits (0b1010)
	// and word 1's bit 0 holds its top bit (0).
	word0 := uint64(0b1010) << 60
	word1 := uint64(0) // top bit of index 12 is 0

	seq, err := Unpack([]int64{int64(word0), int64(word1)}, 5, 13, Compact)
	require.NoError(t, err)

	out := collect(t, seq)
	require.Len(t, out, 13)
	assert.Equal(t, 0x0A, out[12])
}

func TestUnpackPackingMismatch(t *testing.T) {
	_, err := Unpack([]int64{1, 2, 3}, 5, 16, Aligned)
	assert.ErrorIs(t, err, errs.ErrPackingMismatch)
}
