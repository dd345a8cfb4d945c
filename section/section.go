// Package section pairs a chunk section's palette with its packed index
// data, exposing a decoded palette entry per (x, y, z) the way the teacher's
// blob layer pairs a numeric payload with its index/tag metadata
// (blob/numeric_decoder.go).
package section

import (
	"iter"

	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/internal/bitpack"
	"github.com/oakwood-mc/nbtcore/internal/pool"
)

// PaletteEntry is one distinct block-state or biome description (spec §4:
// "an ordered list of distinct block descriptions; each entry has a Name
// and optional Properties").
type PaletteEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

// BlockMinBits and BiomeMinBits are the minimum bits-per-index floors spec
// §4.7 assigns to 1.18+ block and biome palettes respectively.
const (
	BlockMinBits = 4
	BiomeMinBits = 1
)

// BitsPerIndex computes B for a palette of paletteLen entries, floored at
// minBits (BlockMinBits for block-state palettes, BiomeMinBits for 1.18+
// biome palettes).
func BitsPerIndex(paletteLen int, minBits int) int {
	return bitpack.BitsPerIndex(paletteLen, minBits)
}

// Indices unpacks packedData against a palette of paletteLen entries, using
// the packing variant appropriate to the chunk's DataVersion. It returns a
// lazy sequence of count non-negative palette indices.
func Indices(packedData []int64, paletteLen int, count int, minBits int, variant bitpack.Variant) (iter.Seq[int], error) {
	bits := BitsPerIndex(paletteLen, minBits)

	return bitpack.Unpack(packedData, bits, count, variant)
}

// View binds a palette to its unpacked indices and resolves a linear index
// into a PaletteEntry, bounds-checked against the palette.
type View struct {
	Palette  []PaletteEntry
	resolved []int
	release  func()
}

// NewView constructs a View, unpacking packedData eagerly into a random-
// access slice of indices (drawn from a pool, see internal/pool.GetIntSlice)
// so repeated At lookups don't re-walk the bitstream. Call Close once the
// View is no longer needed to return its scratch slice to the pool.
func NewView(packedData []int64, palette []PaletteEntry, count int, minBits int, variant bitpack.Variant) (*View, error) {
	seq, err := Indices(packedData, len(palette), count, minBits, variant)
	if err != nil {
		return nil, err
	}

	resolved, release := pool.GetIntSlice(count)
	i := 0
	for idx := range seq {
		resolved[i] = idx
		i++
	}

	return &View{Palette: palette, resolved: resolved, release: release}, nil
}

// Close returns the View's scratch index slice to the shared pool. A View
// must not be used after Close; Close itself is safe to call more than
// once.
func (v *View) Close() {
	if v.release == nil {
		return
	}
	v.release()
	v.resolved = nil
	v.release = nil
}

// Indices returns the lazy sequence of resolved palette indices in
// canonical Minecraft order (spec §6, "Ordering guarantees").
func (v *View) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range v.resolved {
			if !yield(idx) {
				return
			}
		}
	}
}

// At resolves the palette entry for the linear index at position i.
func (v *View) At(i int) (PaletteEntry, error) {
	if i < 0 || i >= len(v.resolved) {
		return PaletteEntry{}, errs.ErrPaletteIndexOutOfRange
	}

	return v.entryAt(v.resolved[i])
}

func (v *View) entryAt(idx int) (PaletteEntry, error) {
	if idx < 0 || idx >= len(v.Palette) {
		return PaletteEntry{}, errs.ErrPaletteIndexOutOfRange
	}

	return v.Palette[idx], nil
}

// BlockIndex returns the linear index for a block coordinate within a 16^3
// section (spec §6: idx = y*256 + z*16 + x).
func BlockIndex(x, y, z int) int {
	return y*256 + z*16 + x
}

// BiomeIndex returns the linear index for a biome coordinate within a 1.18+
// 4^3 biome section (spec §6: idx = y*16 + z*4 + x).
func BiomeIndex(x, y, z int) int {
	return y*16 + z*4 + x
}
