// Package bitpack decodes the two bit-packed index layouts Anvil sections
// use to store a per-block or per-biome palette index: the pre-1.16
// "compact" stream, where an index may straddle a 64-bit word boundary, and
// the 1.16+ "aligned" layout, where each word holds a whole number of
// fixed-width slots and never straddles.
//
// This mirrors the teacher's staged, iterator-based decode style
// (blob/numeric_decoder.go decodes one fixed-width slot at a time out of a
// flat []byte) generalized from byte-granularity to arbitrary bit widths.
package bitpack

import (
	"iter"

	"github.com/oakwood-mc/nbtcore/errs"
)

// Variant selects which of the two index layouts data was written in.
type Variant int

const (
	// Compact is the pre-1.16 layout: indices form one contiguous
	// bitstream across words and may straddle a word boundary.
	Compact Variant = iota
	// Aligned is the 1.16+ layout: each word holds floor(64/B) whole
	// slots; an index never straddles a word.
	Aligned
)

// DataVersionAligned is the lowest DataVersion this module treats as using
// the Aligned layout. 2529 is the DataVersion introduced alongside the
// 1.16 snapshot that switched block-state storage to non-straddling
// indices; see DESIGN.md for the Open Question this pins down.
const DataVersionAligned = 2529

// VariantForDataVersion returns the packing layout a chunk's sections use,
// given the chunk's DataVersion.
func VariantForDataVersion(dataVersion int32) Variant {
	if dataVersion >= DataVersionAligned {
		return Aligned
	}

	return Compact
}

// BitsPerIndex computes the bits-per-index width for a palette of the given
// size, floored at minBits (4 for 1.18+ block palettes, 1 for 1.18+ biome
// palettes, per spec).
func BitsPerIndex(paletteLen int, minBits int) int {
	b := minBits
	for (1 << b) < paletteLen {
		b++
	}

	return b
}

// expectedWordCount returns how many i64 words data must contain to encode
// count indices of width bits under variant.
func expectedWordCount(count, bits int, variant Variant) int {
	if variant == Aligned {
		slotsPerWord := 64 / bits
		return ceilDiv(count, slotsPerWord)
	}

	return ceilDiv(count*bits, 64)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Unpack validates data against count/bits/variant and returns a lazy
// sequence of count non-negative indices, each < 2^bits.
//
// An empty data with count > 0 is valid only as the single-entry-palette
// shorthand (spec §4.7): every yielded index is 0. Any other length
// mismatch fails with errs.ErrPackingMismatch before the first value is
// yielded.
func Unpack(data []int64, bits int, count int, variant Variant) (iter.Seq[int], error) {
	if len(data) == 0 {
		if count == 0 {
			return func(func(int) bool) {}, nil
		}

		return func(yield func(int) bool) {
			for range count {
				if !yield(0) {
					return
				}
			}
		}, nil
	}

	if len(data) != expectedWordCount(count, bits, variant) {
		return nil, errs.ErrPackingMismatch
	}

	mask := uint64(1)<<uint(bits) - 1

	if variant == Aligned {
		slotsPerWord := 64 / bits

		return func(yield func(int) bool) {
			for i := range count {
				word := uint64(data[i/slotsPerWord])
				shift := uint(i%slotsPerWord) * uint(bits)
				if !yield(int((word >> shift) & mask)) {
					return
				}
			}
		}, nil
	}

	return func(yield func(int) bool) {
		for i := range count {
			bit := i * bits
			word := bit / 64
			off := uint(bit % 64)

			lo := uint64(data[word]) >> off
			v := lo
			if off+uint(bits) > 64 {
				hi := uint64(data[word+1]) << (64 - off)
				v = lo | hi
			}

			if !yield(int(v & mask)) {
				return
			}
		}
	}, nil
}
