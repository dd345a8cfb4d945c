package value

import (
	"bytes"
	"math"
	"slices"

	"github.com/oakwood-mc/nbtcore/tag"
)

// Equal reports structural equality per spec §4.4: two Values are equal iff
// they would serialize to the same byte sequence under a canonical
// encoder, meaning Compound field order is irrelevant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case tag.End:
		return true
	case tag.Byte, tag.Short, tag.Int, tag.Long:
		return a.num == b.num
	case tag.Float, tag.Double:
		// Compare bit patterns so NaN equals an identical NaN and 0 differs
		// from -0, as their encodings do.
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	case tag.String:
		return a.str == b.str
	case tag.ByteArray:
		return bytes.Equal(a.bytes, b.bytes)
	case tag.IntArray:
		return slices.Equal(a.ints, b.ints)
	case tag.LongArray:
		return slices.Equal(a.longs, b.longs)
	case tag.List:
		if a.listElem != b.listElem || len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}

		return true
	case tag.Compound:
		return compoundEqual(a.compound, b.compound)
	default:
		return false
	}
}

func compoundEqual(a, b *Compound) bool {
	if a.Len() != b.Len() {
		return false
	}

	for _, k := range a.keys {
		bv, ok := b.vals[k]
		if !ok || !Equal(a.vals[k], bv) {
			return false
		}
	}

	return true
}
