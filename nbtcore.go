// Package nbtcore provides a binary-format engine for Minecraft: Java
// Edition worlds: a schema-driven Named Binary Tag (NBT) codec and an
// Anvil region-file decoder for the palette-indexed, bit-packed block and
// biome storage inside each chunk.
//
// # Core Features
//
//   - Schema-driven (de)serialization via reflection over struct tags, with
//     zero-copy borrowing of strings and array payloads where the target
//     shape allows it
//   - A dynamic Value type that round-trips any NBT document bit-exactly,
//     including the List-versus-array-tag identity distinction
//   - A lazy Anvil region reader that only touches the sectors a caller
//     actually asks for
//   - A version-tolerant chunk decoder spanning the pre-1.18 Level-wrapped
//     layout and the 1.18+ flattened layout
//   - Both bit-packing variants used across game versions (pre-1.16
//     straddling "compact" layout, 1.16+ non-straddling "aligned" layout)
//
// # Basic Usage
//
// Opening a region file and walking its chunks:
//
//	f, _ := os.Open("r.0.0.mca")
//	info, _ := f.Stat()
//	rg, _ := region.Open(f, info.Size())
//
//	for pos, compressed := range rg.All() {
//	    raw, _ := region.Decompress(compressed.Scheme, compressed.Data)
//	    c, _ := chunk.Decode(raw)
//	    fmt.Printf("chunk (%d,%d): DataVersion=%d, %d sections\n",
//	        pos.CX, pos.CZ, c.DataVersion, len(c.Sections()))
//	}
//
// Decoding an arbitrary NBT document into a declared Go shape:
//
//	type PlayerData struct {
//	    Health float32 `nbt:"Health"`
//	    Pos    []float64 `nbt:"Pos"`
//	}
//
//	var pd PlayerData
//	err := nbtcore.Unmarshal(data, &pd)
//
// # Package Structure
//
// This package wraps the document-level entry points of schema and value
// (Unmarshal, Marshal, DecodeValue, EncodeValue). Region files, chunks,
// tag-level reads and raw section unpacking are used directly from the
// region, chunk, tag and section packages.
package nbtcore

import (
	"github.com/oakwood-mc/nbtcore/schema"
	"github.com/oakwood-mc/nbtcore/value"
)

// Unmarshal decodes a complete top-level NBT document into target, a
// non-nil pointer. See schema.Unmarshal for the full field-mapping rules.
func Unmarshal(data []byte, target any, opts ...schema.Option) error {
	return schema.Unmarshal(data, target, opts...)
}

// Marshal encodes v as a complete top-level NBT document under the given
// root name. See schema.Marshal for the full field-mapping rules.
func Marshal(name string, v any) ([]byte, error) {
	return schema.Marshal(name, v)
}

// DecodeValue parses a complete top-level NBT document into the dynamic
// Value representation, returning its root name alongside the value.
func DecodeValue(data []byte) (name string, v value.Value, err error) {
	return value.Decode(data)
}

// EncodeValue serializes v as a complete top-level NBT document under the
// given root name.
func EncodeValue(name string, v value.Value) ([]byte, error) {
	return value.Encode(name, v)
}
