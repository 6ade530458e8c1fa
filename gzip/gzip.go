// Package gzip implements the RFC 1952 gzip container: a header with
// optional filename/comment/FEXTRA/FHCRC sections, a raw DEFLATE
// payload, and a CRC-32 + ISIZE trailer (§6.3). A stream of
// concatenated members decodes to one Member per member, in order.
package gzip

import (
	"encoding/binary"

	"github.com/scigolib/deflate/internal/checksum"
	"github.com/scigolib/deflate/internal/flate"
	"github.com/scigolib/deflate/internal/utils"
)

const (
	magic1    = 0x1F
	magic2    = 0x8B
	cmDeflate = 8

	flagFTEXT    = 1 << 0
	flagFHCRC    = 1 << 1
	flagFEXTRA   = 1 << 2
	flagFNAME    = 1 << 3
	flagFCOMMENT = 1 << 4
)

// CompressOptions configures Compress for a single gzip member.
type CompressOptions struct {
	Filename       string
	Comment        string
	HCRC           bool
	MTime          uint32 // Unix seconds; 0 is permitted and means unset
	DeflateOptions flate.CompressOptions
}

// Member is one decoded gzip member (§6.3); a gzip stream may
// concatenate several.
type Member struct {
	Name    string
	Comment string
	MTime   uint32
	Data    []byte
}

// Compress wraps data as a single gzip member (§6.3, `gzipCompress`).
func Compress(data []byte, opts CompressOptions) []byte {
	var flg byte
	if opts.Filename != "" {
		flg |= flagFNAME
	}
	if opts.Comment != "" {
		flg |= flagFCOMMENT
	}
	if opts.HCRC {
		flg |= flagFHCRC
	}

	header := []byte{magic1, magic2, cmDeflate, flg}
	mtime := make([]byte, 4)
	binary.LittleEndian.PutUint32(mtime, opts.MTime)
	header = append(header, mtime...)
	header = append(header, 0, 0xFF) // XFL=0, OS=unknown (255)

	if opts.Filename != "" {
		header = append(header, []byte(opts.Filename)...)
		header = append(header, 0)
	}
	if opts.Comment != "" {
		header = append(header, []byte(opts.Comment)...)
		header = append(header, 0)
	}
	if opts.HCRC {
		hcrc := uint16(checksum.CRC32Of(header))
		hcrcBuf := make([]byte, 2)
		binary.LittleEndian.PutUint16(hcrcBuf, hcrc)
		header = append(header, hcrcBuf...)
	}

	payload := flate.Compress(data, opts.DeflateOptions)

	out := make([]byte, 0, len(header)+len(payload)+8)
	out = append(out, header...)
	out = append(out, payload...)

	crcBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(crcBuf, checksum.CRC32Of(data))
	out = append(out, crcBuf...)

	isizeBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(isizeBuf, uint32(len(data)))
	out = append(out, isizeBuf...)
	return out
}

// Decompress decodes a (possibly multi-member) gzip stream into its
// constituent Members in order (§6.3, `gzipDecompress`).
func Decompress(data []byte) ([]Member, error) {
	const op = "gzip: decompress"
	var members []Member

	for len(data) > 0 {
		m, consumed, err := decodeMember(data)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		data = data[consumed:]
	}
	if len(members) == 0 {
		return nil, utils.New(op, utils.KindTruncatedInput)
	}
	return members, nil
}

func decodeMember(data []byte) (Member, int, error) {
	const op = "gzip: decode member"
	if len(data) < 10 {
		return Member{}, 0, utils.New(op, utils.KindTruncatedInput)
	}
	if data[0] != magic1 || data[1] != magic2 {
		return Member{}, 0, utils.New(op, utils.KindInvalidHeader)
	}
	cm := data[2]
	if cm != cmDeflate {
		return Member{}, 0, utils.New(op, utils.KindUnsupportedFeature)
	}
	flg := data[3]
	mtime := binary.LittleEndian.Uint32(data[4:8])
	// data[8] = XFL, data[9] = OS: not surfaced on the decode path.
	pos := 10

	if flg&flagFEXTRA != 0 {
		if len(data) < pos+2 {
			return Member{}, 0, utils.New(op, utils.KindTruncatedInput)
		}
		xlen := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if len(data) < pos+xlen {
			return Member{}, 0, utils.New(op, utils.KindTruncatedInput)
		}
		pos += xlen
	}

	var name string
	if flg&flagFNAME != 0 {
		end, err := findNUL(data, pos)
		if err != nil {
			return Member{}, 0, err
		}
		name = string(data[pos:end])
		pos = end + 1
	}

	var comment string
	if flg&flagFCOMMENT != 0 {
		end, err := findNUL(data, pos)
		if err != nil {
			return Member{}, 0, err
		}
		comment = string(data[pos:end])
		pos = end + 1
	}

	if flg&flagFHCRC != 0 {
		if len(data) < pos+2 {
			return Member{}, 0, utils.New(op, utils.KindTruncatedInput)
		}
		wantHCRC := binary.LittleEndian.Uint16(data[pos : pos+2])
		gotHCRC := uint16(checksum.CRC32Of(data[:pos]))
		if wantHCRC != gotHCRC {
			return Member{}, 0, utils.New(op, utils.KindChecksumMismatch)
		}
		pos += 2
	}

	payload := data[pos:]
	out, consumed, err := flate.DecompressPrefix(payload, flate.DecompressOptions{})
	if err != nil {
		return Member{}, 0, err
	}
	pos += consumed

	if len(data) < pos+8 {
		return Member{}, 0, utils.New(op, utils.KindTruncatedInput)
	}
	wantCRC := binary.LittleEndian.Uint32(data[pos : pos+4])
	isize := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
	pos += 8

	if checksum.CRC32Of(out) != wantCRC {
		return Member{}, 0, utils.New(op, utils.KindChecksumMismatch)
	}
	if uint32(len(out)) != isize {
		return Member{}, 0, utils.New(op, utils.KindSizeMismatch)
	}

	return Member{Name: name, Comment: comment, MTime: mtime, Data: out}, pos, nil
}

func findNUL(data []byte, start int) (int, error) {
	for i := start; i < len(data); i++ {
		if data[i] == 0 {
			return i, nil
		}
	}
	return 0, utils.New("gzip: decode member", utils.KindTruncatedInput)
}
