// Package flate implements the RFC 1951 DEFLATE bitstream: block
// emission (stored, fixed-Huffman, dynamic-Huffman) and the matching
// decoder state machine, built from the lz77, huffman, rle, and bitio
// packages.
package flate

import (
	"github.com/scigolib/deflate/internal/bitio"
	"github.com/scigolib/deflate/internal/huffman"
	"github.com/scigolib/deflate/internal/lz77"
	"github.com/scigolib/deflate/internal/rle"
)

const maxStoredBlockSize = 65535

// Compress runs whole-buffer DEFLATE compression per opts (§4.5, §6.5
// `compressRaw`). Stored mode splits data into ≤65535-byte blocks;
// fixed and dynamic modes emit the whole input as a single final
// block.
func Compress(data []byte, opts CompressOptions) []byte {
	w := bitio.NewWriter()
	switch opts.Type {
	case TypeNone:
		writeStoredBlocks(w, data)
	case TypeFixed:
		writeFixedBlock(w, data, opts.Lazy, true)
	default:
		writeDynamicBlock(w, data, opts.Lazy, true)
	}
	return w.Finish()
}

func writeStoredBlocks(w *bitio.Writer, data []byte) {
	if len(data) == 0 {
		writeStoredBlock(w, nil, true)
		return
	}
	for off := 0; off < len(data); off += maxStoredBlockSize {
		end := off + maxStoredBlockSize
		if end > len(data) {
			end = len(data)
		}
		final := end == len(data)
		writeStoredBlock(w, data[off:end], final)
	}
}

func writeStoredBlock(w *bitio.Writer, chunk []byte, final bool) {
	w.WriteBits(boolBit(final), 1, false)
	w.WriteBits(0, 2, false) // BTYPE 00
	w.Align()
	length := len(chunk)
	w.WriteRawByte(byte(length))
	w.WriteRawByte(byte(length >> 8))
	nlen := ^uint16(length)
	w.WriteRawByte(byte(nlen))
	w.WriteRawByte(byte(nlen >> 8))
	w.WriteRawBytes(chunk)
}

func writeFixedBlock(w *bitio.Writer, data []byte, lazy int, final bool) {
	w.WriteBits(boolBit(final), 1, false)
	w.WriteBits(1, 2, false) // BTYPE 01
	res := lz77.Encode(data, lazy)
	writeTokens(w, res.Tokens, fixedLiteralBook, fixedDistanceBook)
}

func writeDynamicBlock(w *bitio.Writer, data []byte, lazy int, final bool) {
	w.WriteBits(boolBit(final), 1, false)
	w.WriteBits(2, 2, false) // BTYPE 10

	res := lz77.Encode(data, lazy)

	litFreq := make([]int, 286)
	copy(litFreq, res.LitFreq[:])
	distFreq := make([]int, 30)
	copy(distFreq, res.DistFreq[:])
	// A dynamic block always needs at least one distance code, even if
	// no match was ever emitted, so the table builder has something to
	// assign a (unused) code length to.
	if sumInts(distFreq) == 0 {
		distFreq[0] = 1
	}

	litLengths := huffman.ComputeCodeLengths(litFreq, 15)
	distLengths := huffman.ComputeCodeLengths(distFreq, 15)

	hlit := lastNonzero(litLengths, 256) + 1
	if hlit < 257 {
		hlit = 257
	}
	hdist := lastNonzero(distLengths, 0) + 1
	if hdist < 1 {
		hdist = 1
	}

	combined := make([]int, 0, hlit+hdist)
	combined = append(combined, litLengths[:hlit]...)
	combined = append(combined, distLengths[:hdist]...)

	rleRes := rle.Encode(combined)
	clFreq := make([]int, 19)
	for i, f := range rleRes.Freq {
		clFreq[i] = f
	}
	clLengths := huffman.ComputeCodeLengths(clFreq, 7)

	hclen := 19
	for hclen > 4 && clLengths[codeLengthPermutation[hclen-1]] == 0 {
		hclen--
	}

	w.WriteBits(uint32(hlit-257), 5, false)
	w.WriteBits(uint32(hdist-1), 5, false)
	w.WriteBits(uint32(hclen-4), 4, false)
	for i := 0; i < hclen; i++ {
		w.WriteBits(uint32(clLengths[codeLengthPermutation[i]]), 3, false)
	}

	clBook := newCodebook(clLengths)
	for _, sym := range rleRes.Symbols {
		code := sym.Code()
		w.WriteBits(uint32(clBook.codes[code]), clBook.lengths[code], false)
		if sym.ExtraBits > 0 {
			w.WriteBits(uint32(sym.ExtraValue), sym.ExtraBits, false)
		}
	}

	litBook := newCodebook(litLengths[:hlit])
	distBook := newCodebook(distLengths[:hdist])
	writeTokens(w, res.Tokens, litBook, distBook)
}

func writeTokens(w *bitio.Writer, tokens []lz77.Token, litBook, distBook codebook) {
	for _, tok := range tokens {
		switch tok.Kind {
		case lz77.TokenLiteral:
			writeSymbol(w, litBook, int(tok.Literal))
		case lz77.TokenMatch:
			writeSymbol(w, litBook, tok.LengthCode)
			if tok.LengthExtraBits > 0 {
				w.WriteBits(uint32(tok.LengthExtraValue), tok.LengthExtraBits, false)
			}
			writeSymbol(w, distBook, tok.DistCode)
			if tok.DistExtraBits > 0 {
				w.WriteBits(uint32(tok.DistExtraValue), tok.DistExtraBits, false)
			}
		case lz77.TokenEndOfBlock:
			writeSymbol(w, litBook, 256)
		}
	}
}

func writeSymbol(w *bitio.Writer, book codebook, symbol int) {
	w.WriteBits(uint32(book.codes[symbol]), book.lengths[symbol], false)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func sumInts(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}

func lastNonzero(lengths []int, floorIndex int) int {
	for i := len(lengths) - 1; i > floorIndex; i-- {
		if lengths[i] != 0 {
			return i
		}
	}
	return floorIndex
}
