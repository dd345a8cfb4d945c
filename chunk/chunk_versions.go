package chunk

import (
	"github.com/oakwood-mc/nbtcore/internal/bitpack"
	"github.com/oakwood-mc/nbtcore/schema"
	"github.com/oakwood-mc/nbtcore/section"
)

// rawSection is the version-independent shape toSections converts into a
// public Section. Both on-disk layouts get mapped into this one shape
// before any Section is built, so the rest of the package never has to
// know which DataVersion produced a Chunk.
type rawSection struct {
	Y int8

	BlockStates struct {
		Palette []section.PaletteEntry
		Data    schema.LongArrayData
	}
	Biomes struct {
		Palette []section.PaletteEntry
		Data    schema.LongArrayData
	}
}

// flattenedChunk is the 1.18+ on-disk shape: fields live at the chunk
// root instead of under a Level sub-compound.
type flattenedChunk struct {
	DataVersion int32 `nbt:"DataVersion"`
	Sections    []flattenedSection `nbt:"sections"`
}

type flattenedSection struct {
	Y int8 `nbt:"Y"`

	BlockStates struct {
		Palette []section.PaletteEntry `nbt:"palette"`
		Data    schema.LongArrayData   `nbt:"data"`
	} `nbt:"block_states"`

	// Biomes is optional: a section without a biomes compound decodes with
	// an empty biome palette.
	Biomes *struct {
		Palette []section.PaletteEntry `nbt:"palette"`
		Data    schema.LongArrayData   `nbt:"data"`
	} `nbt:"biomes"`
}

func decodeFlattened(nbtBytes []byte, dataVersion int32, variant bitpack.Variant) (*Chunk, error) {
	var fc flattenedChunk
	if err := schema.Unmarshal(nbtBytes, &fc); err != nil {
		return nil, err
	}

	raw := make([]rawSection, 0, len(fc.Sections))
	for _, fs := range fc.Sections {
		var rs rawSection
		rs.Y = fs.Y
		rs.BlockStates.Palette = fs.BlockStates.Palette
		rs.BlockStates.Data = fs.BlockStates.Data
		if fs.Biomes != nil {
			rs.Biomes.Palette = fs.Biomes.Palette
			rs.Biomes.Data = fs.Biomes.Data
		}
		raw = append(raw, rs)
	}

	return &Chunk{
		DataVersion: dataVersion,
		sections:    toSections(raw, variant),
	}, nil
}

// levelWrappedChunk is the pre-1.18 on-disk shape: everything lives under
// a top-level Level compound, and a section's block palette sits directly
// on the section rather than nested under a "block_states" sub-compound.
type levelWrappedChunk struct {
	DataVersion int32 `nbt:"DataVersion"`
	Level       struct {
		Sections []levelWrappedSection `nbt:"Sections"`
	} `nbt:"Level"`
}

type levelWrappedSection struct {
	Y           int8                   `nbt:"Y"`
	BlockStates schema.LongArrayData   `nbt:"BlockStates"`
	Palette     []section.PaletteEntry `nbt:"Palette"`
}

func decodeLevelWrapped(nbtBytes []byte, dataVersion int32, variant bitpack.Variant) (*Chunk, error) {
	var lc levelWrappedChunk
	if err := schema.Unmarshal(nbtBytes, &lc); err != nil {
		return nil, err
	}

	raw := make([]rawSection, 0, len(lc.Level.Sections))
	for _, ls := range lc.Level.Sections {
		var rs rawSection
		rs.Y = ls.Y
		rs.BlockStates.Palette = ls.Palette
		rs.BlockStates.Data = ls.BlockStates
		raw = append(raw, rs)
	}

	return &Chunk{
		DataVersion: dataVersion,
		sections:    toSections(raw, variant),
	}, nil
}
