// Package chunk decodes a region file's per-chunk NBT document into a
// version-tolerant structured view: a DataVersion picks one of two on-disk
// shapes (pre-1.18 Level-wrapped, 1.18+ flattened), both normalized to the
// same Chunk/Section accessor protocol (spec §9, "model chunks as a tagged
// variant over known versions; keep a single accessor protocol").
package chunk

import (
	"cmp"
	"iter"
	"slices"

	"github.com/oakwood-mc/nbtcore/internal/bitpack"
	"github.com/oakwood-mc/nbtcore/schema"
	"github.com/oakwood-mc/nbtcore/section"
)

// DataVersionFlatten is the DataVersion at which chunk fields moved from
// the nested Level compound to the chunk root (the 1.18 "flattening",
// roughly game version 1.18, DataVersion 2825).
const DataVersionFlatten = 2825

// DataVersionAligned re-exports bitpack.DataVersionAligned so callers of
// this package don't need to import internal/bitpack themselves.
const DataVersionAligned = bitpack.DataVersionAligned

// Chunk is the normalized view produced by Decode, independent of which
// on-disk shape it came from.
type Chunk struct {
	DataVersion int32
	sections    []Section
}

// Sections returns the chunk's sections in ascending Y order (spec §6,
// "Ordering guarantees").
func (c *Chunk) Sections() []Section {
	return c.sections
}

// Section is one 16x16x16 (blocks) / 4x4x4 (1.18+ biomes) slice of a
// chunk, pairing each palette with its still-packed index data.
type Section struct {
	Y int8

	BlockPalette []section.PaletteEntry
	blockData    []int64

	BiomePalette []section.PaletteEntry
	biomeData    []int64

	variant bitpack.Variant
}

// BlockIndices unpacks this section's block palette indices in canonical
// Minecraft order (idx = y*256 + z*16 + x).
func (s *Section) BlockIndices() (iter.Seq[int], error) {
	return section.Indices(s.blockData, len(s.BlockPalette), 4096, section.BlockMinBits, s.variant)
}

// BiomeIndices unpacks this section's 1.18+ biome palette indices in
// canonical order (idx = y*16 + z*4 + x). Returns (nil, nil) if the
// section carries no biome palette (pre-1.18 chunks).
func (s *Section) BiomeIndices() (iter.Seq[int], error) {
	if len(s.BiomePalette) == 0 {
		return nil, nil
	}

	return section.Indices(s.biomeData, len(s.BiomePalette), 64, section.BiomeMinBits, s.variant)
}

// At resolves the block palette entry for a block coordinate within this
// section (spec §6 external-interface line: "an accessor (x,y,z) →
// palette_entry").
func (s *Section) At(x, y, z int) (section.PaletteEntry, error) {
	view, err := section.NewView(s.blockData, s.BlockPalette, 4096, section.BlockMinBits, s.variant)
	if err != nil {
		return section.PaletteEntry{}, err
	}
	defer view.Close()

	return view.At(section.BlockIndex(x, y, z))
}

// dataVersionProbe reads just the DataVersion field, used to decide which
// full schema shape to decode with.
type dataVersionProbe struct {
	DataVersion int32 `nbt:"DataVersion"`
}

// Decode parses a complete, already-decompressed chunk NBT document.
func Decode(nbtBytes []byte) (*Chunk, error) {
	var probe dataVersionProbe
	if err := schema.Unmarshal(nbtBytes, &probe); err != nil {
		return nil, err
	}

	variant := bitpack.VariantForDataVersion(probe.DataVersion)

	if probe.DataVersion >= DataVersionFlatten {
		return decodeFlattened(nbtBytes, probe.DataVersion, variant)
	}

	return decodeLevelWrapped(nbtBytes, probe.DataVersion, variant)
}

func toSections(raw []rawSection, variant bitpack.Variant) []Section {
	out := make([]Section, 0, len(raw))
	for _, rs := range raw {
		out = append(out, Section{
			Y:            rs.Y,
			BlockPalette: rs.BlockStates.Palette,
			blockData:    []int64(rs.BlockStates.Data),
			BiomePalette: rs.Biomes.Palette,
			biomeData:    []int64(rs.Biomes.Data),
			variant:      variant,
		})
	}
	slices.SortStableFunc(out, func(a, b Section) int { return cmp.Compare(a.Y, b.Y) })

	return out
}
