package schema

// IntArrayData marks a []int32 field as the dedicated IntArray tag (wire id
// 11) rather than the default List(Int) a plain []int32 field gets. Use
// this whenever round-trip identity of the array-vs-list distinction
// matters (spec §4.2/§9, "array-versus-list identity").
type IntArrayData []int32

// LongArrayData is IntArrayData's LongArray (wire id 12) counterpart.
type LongArrayData []int64

// Borrowed is a string field type that requests a zero-copy loan of the
// underlying NBT stream bytes instead of an allocated copy. Decoding into a
// Borrowed field fails with errs.ErrBorrowUnavailable if the string's
// modified-UTF-8 bytes needed escaping (i.e. DecodeASCIIFast could not be
// used), since at that point a copy is unavoidable (spec §4.2).
//
// A Borrowed value is only valid for as long as the original input buffer
// passed to Unmarshal is kept alive.
type Borrowed string
