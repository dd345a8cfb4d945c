package region

import "iter"

// All yields every present chunk in location-table (row-major chunk
// coordinate) order, matching the teacher's iterator idiom
// (blob.NumericBlob.All(metricID) iter.Seq2[int, NumericDataPoint]).
// A present chunk whose read fails is skipped silently, and nothing is
// yielded if the header cannot be read.
func (rg *Region) All() iter.Seq2[ChunkPos, Compressed] {
	return func(yield func(ChunkPos, Compressed) bool) {
		if err := rg.ensureHeader(); err != nil {
			return
		}

		for i := range locationEntries {
			if rg.locations[i] == 0 {
				continue
			}

			cx := i % chunkGridDim
			cz := i / chunkGridDim

			c, ok, err := rg.ReadChunk(cx, cz)
			if err != nil || !ok {
				continue
			}

			if !yield(ChunkPos{CX: cx, CZ: cz}, c) {
				return
			}
		}
	}
}
