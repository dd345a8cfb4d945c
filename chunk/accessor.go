package chunk

import (
	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/section"
)

// Accessor resolves a world block coordinate to its palette entry,
// combining the section lookup (by dividing world Y into 16-block slices)
// with the per-section bit-unpack-and-dereference Section.At already
// does (spec §6 external-interface line: "an accessor (x,y,z) →
// palette_entry").
type Accessor struct {
	c *Chunk
}

// NewAccessor wraps c for repeated (x, y, z) lookups.
func NewAccessor(c *Chunk) *Accessor {
	return &Accessor{c: c}
}

// At resolves the palette entry at world coordinate (x, y, z), where x and
// z are in [0, 16) (chunk-local) and y is the world Y value whose section
// is `y >> 4`.
func (a *Accessor) At(x, y, z int) (section.PaletteEntry, error) {
	sectionY := int8(y >> 4)
	localY := y & 0xF

	for i := range a.c.sections {
		s := &a.c.sections[i]
		if s.Y == sectionY {
			return s.At(x, localY, z)
		}
	}

	return section.PaletteEntry{}, errs.Custom("chunk: no section at requested Y")
}
