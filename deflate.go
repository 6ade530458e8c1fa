// Package deflate implements RFC 1951 DEFLATE compression and
// decompression over in-memory byte buffers, plus the zlib, gzip, and
// ZIP container formats built on top of it (see the zlib, gzip, and
// archive/zip subpackages).
package deflate

import "github.com/scigolib/deflate/internal/flate"

// CompressionType selects the DEFLATE block emission mode for
// CompressRaw (§4.5).
type CompressionType = flate.CompressionType

const (
	TypeNone    = flate.TypeNone
	TypeFixed   = flate.TypeFixed
	TypeDynamic = flate.TypeDynamic
)

// BufferType names the decoder's output-buffer policy for
// DecompressRaw (§4.9); both values decode into the same growable
// buffer.
type BufferType = flate.BufferType

const (
	BufferAdaptive = flate.BufferAdaptive
	BufferBlock    = flate.BufferBlock
)

// CompressOptions configures CompressRaw.
type CompressOptions = flate.CompressOptions

// DecompressOptions configures DecompressRaw.
type DecompressOptions = flate.DecompressOptions

// CompressRaw compresses data into a raw DEFLATE bitstream (§6.5).
func CompressRaw(data []byte, opts CompressOptions) []byte {
	return flate.Compress(data, opts)
}

// DecompressRaw decodes a raw DEFLATE bitstream back into its
// original bytes (§6.5).
func DecompressRaw(data []byte, opts DecompressOptions) ([]byte, error) {
	return flate.Decompress(data, opts)
}
