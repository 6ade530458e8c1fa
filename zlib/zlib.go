// Package zlib implements the RFC 1950 zlib container: a two-byte
// CMF/FLG header wrapping a raw DEFLATE stream, trailed by a
// big-endian Adler-32 checksum of the uncompressed data (§6.2).
package zlib

import (
	"encoding/binary"

	"github.com/scigolib/deflate/internal/checksum"
	"github.com/scigolib/deflate/internal/flate"
	"github.com/scigolib/deflate/internal/utils"
)

// CompressOptions configures Compress. Level is advisory: it only
// picks the FLG compression-level hint bits and the underlying
// CompressionType/Lazy pairing it maps to (§9's "two knobs" limit).
type CompressOptions struct {
	Level int // 0 = store, 1..5 = fast/fixed, 6..9 = dynamic with deeper lazy search
}

// DecompressOptions configures Decompress.
type DecompressOptions struct {
	// Verify, when true, checks the Adler-32 trailer against the
	// decoded output and returns ChecksumMismatch on disagreement.
	Verify bool
}

func flateOptionsForLevel(level int) flate.CompressOptions {
	switch {
	case level == 0:
		return flate.CompressOptions{Type: flate.TypeNone}
	case level <= 5:
		return flate.CompressOptions{Type: flate.TypeFixed, Lazy: 0}
	default:
		return flate.CompressOptions{Type: flate.TypeDynamic, Lazy: 8}
	}
}

// flgLevelHint maps a CompressOptions.Level into the two-bit FLG
// compression-level hint (§6.2): 0 fastest, 3 maximum compression.
func flgLevelHint(level int) byte {
	switch {
	case level == 0:
		return 0
	case level <= 2:
		return 0
	case level <= 5:
		return 1
	case level <= 8:
		return 2
	default:
		return 3
	}
}

// Compress wraps data in a zlib container (§6.2, `zlibCompress`).
func Compress(data []byte, opts CompressOptions) []byte {
	cmf := byte(0x78) // CINFO=7 (32K window), CM=8 (deflate)
	levelHint := flgLevelHint(opts.Level)
	flg := levelHint << 6
	// Adjust FLG's low 5 bits (FCHECK) so (CMF*256+FLG) % 31 == 0,
	// with the FDICT bit (bit 5) left clear.
	remainder := (int(cmf)*256 + int(flg)) % 31
	if remainder != 0 {
		flg += byte(31 - remainder)
	}

	payload := flate.Compress(data, flateOptionsForLevel(opts.Level))

	out := make([]byte, 0, 2+len(payload)+4)
	out = append(out, cmf, flg)
	out = append(out, payload...)

	checksumBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(checksumBuf, checksum.Adler32Of(data))
	out = append(out, checksumBuf...)
	return out
}

// Decompress unwraps a zlib container back into the original bytes
// (§6.2, `zlibDecompress`).
func Decompress(data []byte, opts DecompressOptions) ([]byte, error) {
	const op = "zlib: decompress"
	if len(data) < 6 {
		return nil, utils.New(op, utils.KindTruncatedInput)
	}
	cmf, flg := data[0], data[1]
	if (int(cmf)*256+int(flg))%31 != 0 {
		return nil, utils.New(op, utils.KindInvalidHeader)
	}
	if cmf&0x0F != 8 {
		return nil, utils.New(op, utils.KindInvalidHeader)
	}
	if flg&0x20 != 0 {
		return nil, utils.New(op, utils.KindUnsupportedFeature) // FDICT set
	}

	payload := data[2 : len(data)-4]
	trailer := binary.BigEndian.Uint32(data[len(data)-4:])

	out, err := flate.Decompress(payload, flate.DecompressOptions{})
	if err != nil {
		return nil, err
	}

	if opts.Verify {
		if checksum.Adler32Of(out) != trailer {
			return nil, utils.New(op, utils.KindChecksumMismatch)
		}
	}
	return out, nil
}
