// Package region reads and writes Minecraft Anvil region files: the
// mmappable 4 KiB-sector container of per-chunk compressed NBT streams.
//
// It follows the teacher's lazy-header, read-on-demand discipline
// (mebo's NumericDecoder parses a header eagerly but defers payload
// materialization to Decode) and borrows io.ReaderAt's stateless-offset
// contract instead of guarding a read cursor with a mutex.
package region

import (
	"io"

	"github.com/oakwood-mc/nbtcore/endian"
	"github.com/oakwood-mc/nbtcore/errs"
)

const (
	sectorSize       = 4096
	headerSectors    = 2
	headerSize       = headerSectors * sectorSize
	locationEntries  = 1024
	chunkGridDim     = 32
	maxSectorCount   = 255
)

// Compression scheme ids used in a chunk payload header (spec §3).
const (
	SchemeGZip        byte = 1
	SchemeZlib        byte = 2
	SchemeUncompressed byte = 3
	SchemeLZ4         byte = 4
)

// ChunkPos identifies a chunk by its region-relative coordinates, each in
// [0, 32).
type ChunkPos struct {
	CX, CZ int
}

// Compressed is a chunk's still-compressed payload as read directly off
// disk, paired with the compression scheme it declares.
type Compressed struct {
	Scheme byte
	Data   []byte
}

// Region is a lazily-parsed view over one region file's 8 KiB header plus
// its chunk payloads.
type Region struct {
	r      io.ReaderAt
	size   int64
	engine endian.EndianEngine

	headerLoaded bool
	locations    [locationEntries]uint32 // (sectorOffset<<8)|sectorCount
	timestamps   [locationEntries]uint32
}

// Open wraps r (typically *os.File or bytes.NewReader(buf)), which must
// report a total length of size bytes. The header sectors are not read
// until the first Locate, ReadChunk, or All call.
//
// A size of 0 is accepted (spec §4.5: "an empty-file source is accepted
// and reports no chunks present"). Any other size below headerSize fails
// with errs.ErrMalformed.
func Open(r io.ReaderAt, size int64) (*Region, error) {
	if size != 0 && size < headerSize {
		return nil, errs.ErrMalformed
	}

	return &Region{r: r, size: size, engine: endian.GetBigEndianEngine()}, nil
}

func (rg *Region) ensureHeader() error {
	if rg.headerLoaded || rg.size == 0 {
		rg.headerLoaded = true
		return nil
	}

	var buf [headerSize]byte
	if _, err := rg.r.ReadAt(buf[:], 0); err != nil && err != io.EOF {
		return errs.ErrMalformed
	}

	for i := range locationEntries {
		off := i * 4
		rg.locations[i] = rg.engine.Uint32(buf[off : off+4])
	}
	for i := range locationEntries {
		off := headerSize/2 + i*4
		rg.timestamps[i] = rg.engine.Uint32(buf[off : off+4])
	}

	rg.headerLoaded = true

	return nil
}

func entryIndex(cx, cz int) int {
	return mod32(cx) + mod32(cz)*chunkGridDim
}

func mod32(n int) int {
	m := n % chunkGridDim
	if m < 0 {
		m += chunkGridDim
	}

	return m
}

// Locate returns the sector offset and sector count for chunk (cx, cz),
// or ok=false if the entry is zero ("chunk absent", spec §3).
func (rg *Region) Locate(cx, cz int) (sectorOffset, sectorCount uint32, ok bool, err error) {
	if err := rg.ensureHeader(); err != nil {
		return 0, 0, false, err
	}

	entry := rg.locations[entryIndex(cx, cz)]
	if entry == 0 {
		return 0, 0, false, nil
	}

	return entry >> 8, entry & 0xFF, true, nil
}

// Timestamp returns the informational last-modified timestamp for chunk
// (cx, cz), or 0 if the chunk is absent.
func (rg *Region) Timestamp(cx, cz int) (uint32, error) {
	if err := rg.ensureHeader(); err != nil {
		return 0, err
	}

	return rg.timestamps[entryIndex(cx, cz)], nil
}

// ReadChunk reads the still-compressed payload for chunk (cx, cz). ok is
// false if the chunk is absent; this is not an error (spec §4.5). A
// present chunk whose declared length exceeds its sector span fails with
// errs.ErrOverlongChunk.
func (rg *Region) ReadChunk(cx, cz int) (c Compressed, ok bool, err error) {
	sectorOffset, sectorCount, present, err := rg.Locate(cx, cz)
	if err != nil {
		return Compressed{}, false, err
	}
	if !present {
		return Compressed{}, false, nil
	}

	start := int64(sectorOffset) * sectorSize
	span := int64(sectorCount) * sectorSize

	var lenAndScheme [5]byte
	if _, err := rg.r.ReadAt(lenAndScheme[:], start); err != nil {
		return Compressed{}, false, errs.AtChunk(cx, cz, errs.ErrMalformed)
	}

	l := int64(rg.engine.Uint32(lenAndScheme[:4]))
	scheme := lenAndScheme[4]

	if l < 1 || 5+(l-1) > span {
		return Compressed{}, false, errs.AtChunk(cx, cz, errs.ErrOverlongChunk)
	}

	payload := make([]byte, l-1)
	if _, err := rg.r.ReadAt(payload, start+5); err != nil {
		return Compressed{}, false, errs.AtChunk(cx, cz, errs.ErrMalformed)
	}

	return Compressed{Scheme: scheme, Data: payload}, true, nil
}
