package region

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/oakwood-mc/nbtcore/errs"
	"github.com/oakwood-mc/nbtcore/internal/pool"
	"github.com/pierrec/lz4/v4"
)

// Decompress expands a chunk payload according to its declared scheme.
// Compression streams themselves are out of scope for this module's codec work
// (spec §1: "compression streams are consumed as ordinary byte streams via
// an external decompressor"), but wiring the decompressor here saves every
// caller from re-deriving the same four-way dispatch.
//
// The decompressed output is staged through a pooled chunk-sized scratch
// buffer (a decompressed chunk document is comparatively large, the case
// the chunk buffer pool tier exists for) before being copied out to an
// owned, right-sized slice.
func Decompress(scheme byte, data []byte) ([]byte, error) {
	if scheme == SchemeUncompressed {
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	}

	var src io.Reader

	switch scheme {
	case SchemeGZip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbtcore: gzip: %w", err)
		}
		defer zr.Close()
		src = zr

	case SchemeZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbtcore: zlib: %w", err)
		}
		defer zr.Close()
		src = zr

	case SchemeLZ4:
		src = lz4.NewReader(bytes.NewReader(data))

	default:
		return nil, fmt.Errorf("%w: scheme %d", errs.ErrUnsupportedCompression, scheme)
	}

	scratch := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(scratch)

	if _, err := io.Copy(scratch, src); err != nil {
		return nil, err
	}

	out := make([]byte, scratch.Len())
	copy(out, scratch.Bytes())

	return out, nil
}

// Compress is Decompress's inverse. Writer does not call it; callers use it
// to produce the already-compressed payload that Writer.Put stores.
func Compress(scheme byte, data []byte) ([]byte, error) {
	var buf bytes.Buffer

	switch scheme {
	case SchemeGZip:
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}

	case SchemeZlib:
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}

	case SchemeUncompressed:
		buf.Write(data)

	case SchemeLZ4:
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: scheme %d", errs.ErrUnsupportedCompression, scheme)
	}

	return buf.Bytes(), nil
}
