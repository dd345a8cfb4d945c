// Package value implements Value, a dynamic representation of arbitrary NBT
// that round-trips bit-exactly (spec §4.4).
//
// Value is a tagged union over the twelve NBT tag kinds, modeled as a
// struct with one field per variant rather than an interface{} payload —
// the same "packed typed fields" discipline the teacher's section package
// uses for its header flags, just applied to a sum type instead of bit
// flags.
package value

import "github.com/oakwood-mc/nbtcore/tag"

// Value is a dynamic NBT value. The zero Value is an End tag.
type Value struct {
	kind tag.ID

	num      int64   // Byte/Short/Int/Long, widened to int64
	f        float64 // Float/Double
	str      string  // String
	bytes    []byte  // ByteArray
	ints     []int32 // IntArray
	longs    []int64 // LongArray
	list     []Value // List
	listElem tag.ID  // element kind of a List (meaningful even for an empty list)
	compound *Compound
}

// Kind returns the NBT tag kind this Value holds.
func (v Value) Kind() tag.ID { return v.kind }

// IsEnd reports whether v is the (only valid, payload-less) End tag.
func (v Value) IsEnd() bool { return v.kind == tag.End }

func (v Value) AsByte() (int8, bool) {
	if v.kind != tag.Byte {
		return 0, false
	}

	return int8(v.num), true
}

func (v Value) AsShort() (int16, bool) {
	if v.kind != tag.Short {
		return 0, false
	}

	return int16(v.num), true
}

func (v Value) AsInt() (int32, bool) {
	if v.kind != tag.Int {
		return 0, false
	}

	return int32(v.num), true
}

func (v Value) AsLong() (int64, bool) {
	if v.kind != tag.Long {
		return 0, false
	}

	return v.num, true
}

func (v Value) AsFloat() (float32, bool) {
	if v.kind != tag.Float {
		return 0, false
	}

	return float32(v.f), true
}

func (v Value) AsDouble() (float64, bool) {
	if v.kind != tag.Double {
		return 0, false
	}

	return v.f, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != tag.String {
		return "", false
	}

	return v.str, true
}

func (v Value) AsByteArray() ([]byte, bool) {
	if v.kind != tag.ByteArray {
		return nil, false
	}

	return v.bytes, true
}

func (v Value) AsIntArray() ([]int32, bool) {
	if v.kind != tag.IntArray {
		return nil, false
	}

	return v.ints, true
}

func (v Value) AsLongArray() ([]int64, bool) {
	if v.kind != tag.LongArray {
		return nil, false
	}

	return v.longs, true
}

// AsList returns the element kind and items of a List value.
func (v Value) AsList() (elem tag.ID, items []Value, ok bool) {
	if v.kind != tag.List {
		return 0, nil, false
	}

	return v.listElem, v.list, true
}

// AsCompound returns the underlying Compound of a Compound value.
func (v Value) AsCompound() (*Compound, bool) {
	if v.kind != tag.Compound {
		return nil, false
	}

	return v.compound, true
}
