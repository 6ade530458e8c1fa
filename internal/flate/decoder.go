package flate

import (
	"github.com/scigolib/deflate/internal/bitio"
	"github.com/scigolib/deflate/internal/huffman"
	"github.com/scigolib/deflate/internal/lz77"
	"github.com/scigolib/deflate/internal/utils"
)

// Decompress runs the DEFLATE decoder state machine of §4.9 to
// completion, returning the fully reassembled output. opts.BufferSize
// seeds the output buffer's initial capacity; opts.BufferType is
// accepted for interface parity with the two-policy design in §4.9,
// but both policies converge on the same adaptive growable buffer
// here, since a whole-buffer library has no latency motive to keep a
// bounded sliding window distinct from the final output.
func Decompress(data []byte, opts DecompressOptions) ([]byte, error) {
	out, _, err := DecompressPrefix(data, opts)
	return out, err
}

// DecompressPrefix behaves like Decompress but also reports how many
// leading bytes of data were consumed by the DEFLATE stream, with any
// final partial byte's unused high bits discarded (§4.9's cursor
// rollback). Containers that place a trailer immediately after the
// compressed payload, or concatenate multiple members (gzip), use this
// to locate the boundary without pre-splitting the input themselves.
func DecompressPrefix(data []byte, opts DecompressOptions) ([]byte, int, error) {
	bufCap := opts.BufferSize
	if bufCap <= 0 {
		bufCap = 256
		if grown, err := utils.SafeMultiply(uint64(len(data)), 3); err == nil && grown > uint64(bufCap) {
			bufCap = int(grown)
		}
	}
	out := utils.NewByteBuffer(bufCap)
	r := bitio.NewReader(data)

	for {
		final, err := r.ReadBits(1)
		if err != nil {
			return nil, 0, utils.Wrap("flate: decompress", utils.KindTruncatedInput, err)
		}
		btype, err := r.ReadBits(2)
		if err != nil {
			return nil, 0, utils.Wrap("flate: decompress", utils.KindTruncatedInput, err)
		}

		switch btype {
		case 0:
			if err := decodeStoredBlock(r, out); err != nil {
				return nil, 0, err
			}
		case 1:
			if err := decodeHuffmanBlock(r, out, fixedLiteralTable, fixedDistanceTable); err != nil {
				return nil, 0, err
			}
		case 2:
			litTable, distTable, err := readDynamicTables(r)
			if err != nil {
				return nil, 0, err
			}
			if err := decodeHuffmanBlock(r, out, litTable, distTable); err != nil {
				return nil, 0, err
			}
		default:
			return nil, 0, utils.New("flate: decompress", utils.KindReservedBlockType)
		}

		if final == 1 {
			break
		}
	}

	r.Align()
	return out.Bytes(), r.BytesConsumed(), nil
}

func decodeStoredBlock(r *bitio.Reader, out *utils.ByteBuffer) error {
	r.Align()
	lenBytes, err := r.ReadAlignedBytes(2)
	if err != nil {
		return utils.Wrap("flate: stored block length", utils.KindTruncatedInput, err)
	}
	nlenBytes, err := r.ReadAlignedBytes(2)
	if err != nil {
		return utils.Wrap("flate: stored block length", utils.KindTruncatedInput, err)
	}
	length := int(lenBytes[0]) | int(lenBytes[1])<<8
	nlen := int(nlenBytes[0]) | int(nlenBytes[1])<<8
	if length != (^nlen)&0xFFFF {
		return utils.New("flate: stored block length", utils.KindInvalidStoredLength)
	}
	chunk, err := r.ReadAlignedBytes(length)
	if err != nil {
		return utils.Wrap("flate: stored block body", utils.KindTruncatedInput, err)
	}
	out.Write(chunk)
	return nil
}

func readDynamicTables(r *bitio.Reader) (*huffman.Table, *huffman.Table, error) {
	hlitRaw, err := r.ReadBits(5)
	if err != nil {
		return nil, nil, utils.Wrap("flate: dynamic header", utils.KindTruncatedInput, err)
	}
	hdistRaw, err := r.ReadBits(5)
	if err != nil {
		return nil, nil, utils.Wrap("flate: dynamic header", utils.KindTruncatedInput, err)
	}
	hclenRaw, err := r.ReadBits(4)
	if err != nil {
		return nil, nil, utils.Wrap("flate: dynamic header", utils.KindTruncatedInput, err)
	}
	hlit := int(hlitRaw) + 257
	hdist := int(hdistRaw) + 1
	hclen := int(hclenRaw) + 4

	clLengths := make([]int, 19)
	for i := 0; i < hclen; i++ {
		v, err := r.ReadBits(3)
		if err != nil {
			return nil, nil, utils.Wrap("flate: code-length lengths", utils.KindTruncatedInput, err)
		}
		clLengths[codeLengthPermutation[i]] = int(v)
	}
	clTable := huffman.BuildTable(clLengths)

	combined := make([]int, 0, hlit+hdist)
	var prev int
	for len(combined) < hlit+hdist {
		sym, err := huffman.Decode(r, clTable)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case sym < 16:
			combined = append(combined, sym)
			prev = sym
		case sym == 16:
			extra, err := r.ReadBits(2)
			if err != nil {
				return nil, nil, utils.Wrap("flate: repeat-previous extra", utils.KindTruncatedInput, err)
			}
			run := int(extra) + 3
			for k := 0; k < run; k++ {
				combined = append(combined, prev)
			}
		case sym == 17:
			extra, err := r.ReadBits(3)
			if err != nil {
				return nil, nil, utils.Wrap("flate: zero-run extra", utils.KindTruncatedInput, err)
			}
			run := int(extra) + 3
			for k := 0; k < run; k++ {
				combined = append(combined, 0)
			}
			prev = 0
		case sym == 18:
			extra, err := r.ReadBits(7)
			if err != nil {
				return nil, nil, utils.Wrap("flate: zero-run extra", utils.KindTruncatedInput, err)
			}
			run := int(extra) + 11
			for k := 0; k < run; k++ {
				combined = append(combined, 0)
			}
			prev = 0
		default:
			return nil, nil, utils.New("flate: code-length symbol", utils.KindInvalidCodeLength)
		}
	}
	if len(combined) != hlit+hdist {
		return nil, nil, utils.New("flate: code-length symbol overrun", utils.KindInvalidCodeLength)
	}

	litTable := huffman.BuildTable(combined[:hlit])
	distTable := huffman.BuildTable(combined[hlit:])
	return litTable, distTable, nil
}

func decodeHuffmanBlock(r *bitio.Reader, out *utils.ByteBuffer, litTable, distTable *huffman.Table) error {
	for {
		sym, err := huffman.Decode(r, litTable)
		if err != nil {
			return err
		}
		switch {
		case sym < 256:
			out.WriteByte(byte(sym))
		case sym == 256:
			return nil
		default:
			code := sym - 257
			if code < 0 || code >= len(lz77.LengthBase) {
				return utils.New("flate: length code", utils.KindInvalidCodeLength)
			}
			extra, err := r.ReadBits(lz77.LengthExtraBits[code])
			if err != nil {
				return utils.Wrap("flate: length extra", utils.KindTruncatedInput, err)
			}
			length := lz77.LengthBase[code] + int(extra)

			distSym, err := huffman.Decode(r, distTable)
			if err != nil {
				return err
			}
			if distSym < 0 || distSym >= len(lz77.DistBase) {
				return utils.New("flate: distance code", utils.KindInvalidCodeLength)
			}
			distExtra, err := r.ReadBits(lz77.DistExtraBits[distSym])
			if err != nil {
				return utils.Wrap("flate: distance extra", utils.KindTruncatedInput, err)
			}
			distance := lz77.DistBase[distSym] + int(distExtra)

			if distance > out.Len() {
				return utils.New("flate: back-reference", utils.KindBadInputSize)
			}
			start := out.Len() - distance
			for k := 0; k < length; k++ {
				out.WriteByte(out.At(start + k))
			}
		}
	}
}
