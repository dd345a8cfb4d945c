package region

import (
	"io"

	"github.com/oakwood-mc/nbtcore/endian"
	"github.com/oakwood-mc/nbtcore/errs"
)

// Writer accumulates chunk payloads and lays them out into a region file's
// sector structure, the inverse of Region. Its sector-packing arithmetic is
// grounded directly on the same-shaped SaveRegion helper found in the
// broader Anvil tooling ecosystem: a running sector cursor, a location
// entry of (offset<<8)|count, and sector-boundary padding.
type Writer struct {
	entries    [locationEntries]*writerEntry
	timestamps [locationEntries]uint32
	engine     endian.EndianEngine
}

type writerEntry struct {
	scheme byte
	data   []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{engine: endian.GetBigEndianEngine()}
}

// Put stages a chunk's already-compressed payload for (cx, cz). scheme must
// be one of the SchemeXxx constants. Call WriteTo once every chunk has been
// staged.
func (w *Writer) Put(cx, cz int, scheme byte, compressed []byte, timestamp uint32) {
	idx := entryIndex(cx, cz)
	w.entries[idx] = &writerEntry{scheme: scheme, data: compressed}
	w.timestamps[idx] = timestamp
}

// WriteTo serializes the staged chunks as a complete region file to dst,
// writing the location table, the timestamp table, and every chunk payload
// in ascending entry-index order, each padded to its sector span.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	var locations, timestamps [sectorSize]byte

	currentSector := uint32(headerSectors)

	var body []byte

	for idx := range locationEntries {
		e := w.entries[idx]
		if e == nil {
			continue
		}

		payloadLen := uint32(len(e.data)) + 1 // +1 for the scheme byte
		totalLen := 4 + payloadLen
		sectorCount := (totalLen + sectorSize - 1) / sectorSize
		if sectorCount > maxSectorCount {
			return 0, errs.ErrOverlongChunk
		}

		off := idx * 4
		w.engine.PutUint32(locations[off:off+4], (currentSector<<8)|sectorCount)
		w.engine.PutUint32(timestamps[off:off+4], w.timestamps[idx])

		var header [5]byte
		w.engine.PutUint32(header[0:4], payloadLen)
		header[4] = e.scheme
		body = append(body, header[:]...)
		body = append(body, e.data...)

		if pad := int(sectorCount)*sectorSize - int(totalLen); pad > 0 {
			body = append(body, make([]byte, pad)...)
		}

		currentSector += sectorCount
	}

	var written int64

	n, err := dst.Write(locations[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	n, err = dst.Write(timestamps[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	n, err = dst.Write(body)
	written += int64(n)

	return written, err
}
