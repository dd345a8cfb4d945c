package section

// PaletteBuilder appends distinct PaletteEntry values and hands back their
// index, deduplicating by (Name, Properties) equality the way the teacher's
// indexMaps[T] appends a value once and remembers its position for reuse
// (internal/encoding index-map helpers).
type PaletteBuilder struct {
	entries []PaletteEntry
	index   map[string]int
}

// NewPaletteBuilder returns an empty builder.
func NewPaletteBuilder() *PaletteBuilder {
	return &PaletteBuilder{index: make(map[string]int)}
}

// Add returns the index of entry within the palette being built, appending
// it if this is the first time an equal entry has been seen.
func (b *PaletteBuilder) Add(entry PaletteEntry) int {
	key := paletteKey(entry)
	if idx, ok := b.index[key]; ok {
		return idx
	}

	idx := len(b.entries)
	b.entries = append(b.entries, entry)
	b.index[key] = idx

	return idx
}

// Palette returns the accumulated palette in insertion order.
func (b *PaletteBuilder) Palette() []PaletteEntry {
	return b.entries
}

// Len reports how many distinct entries have been added so far.
func (b *PaletteBuilder) Len() int {
	return len(b.entries)
}

func paletteKey(e PaletteEntry) string {
	key := e.Name
	for _, k := range sortedKeys(e.Properties) {
		key += "\x00" + k + "=" + e.Properties[k]
	}

	return key
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	insertionSort(keys)

	return keys
}

// insertionSort avoids pulling in "sort" for what's always a handful of
// block-state property keys.
func insertionSort(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
