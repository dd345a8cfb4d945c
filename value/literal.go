package value

import "github.com/oakwood-mc/nbtcore/tag"

// Literal constructors. These give tests and examples a way to spell out
// NBT documents without going through the schema layer (spec §4.4).

func Byte(v int8) Value   { return Value{kind: tag.Byte, num: int64(v)} }
func Short(v int16) Value { return Value{kind: tag.Short, num: int64(v)} }
func Int(v int32) Value   { return Value{kind: tag.Int, num: int64(v)} }
func Long(v int64) Value  { return Value{kind: tag.Long, num: v} }
func Float(v float32) Value { return Value{kind: tag.Float, f: float64(v)} }
func Double(v float64) Value { return Value{kind: tag.Double, f: v} }
func Str(v string) Value  { return Value{kind: tag.String, str: v} }

func ByteArray(v []byte) Value  { return Value{kind: tag.ByteArray, bytes: v} }
func IntArray(v []int32) Value  { return Value{kind: tag.IntArray, ints: v} }
func LongArray(v []int64) Value { return Value{kind: tag.LongArray, longs: v} }

// List constructs a List value of the given element kind. elem must be
// supplied even for an empty list, since NBT preserves the element tag of
// an empty List (spec §3).
func List(elem tag.ID, items ...Value) Value {
	return Value{kind: tag.List, listElem: elem, list: items}
}

// Num picks the smallest NBT integer kind that exactly represents v,
// per spec §4.4 ("literal integers map to the smallest exactly-representing
// NBT kind unless an explicit tag is requested").
func Num(v int64) Value {
	switch {
	case v >= -1<<7 && v < 1<<7:
		return Byte(int8(v))
	case v >= -1<<15 && v < 1<<15:
		return Short(int16(v))
	case v >= -1<<31 && v < 1<<31:
		return Int(int32(v))
	default:
		return Long(v)
	}
}

// Pair is a name/value field used by CompoundOf.
type Pair struct {
	Name string
	Val  Value
}

// CompoundOf builds a Compound value from an ordered list of fields, a
// terser alternative to NewCompound().Set(...).Set(...) for literal-heavy
// test fixtures.
func CompoundOf(pairs ...Pair) Value {
	c := NewCompound()
	for _, p := range pairs {
		c.Set(p.Name, p.Val)
	}

	return CompoundValue(c)
}

// F is shorthand for Pair{Name: name, Val: v}, meant to be used inline with
// CompoundOf: CompoundOf(F("id", Str("minecraft:stone"))).
func F(name string, v Value) Pair {
	return Pair{Name: name, Val: v}
}
