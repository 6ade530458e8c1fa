package huffman

import "github.com/scigolib/deflate/internal/bitio"

// Table is the canonical-length lookup table of §3.5: Entries has
// 1<<MaxLen slots, each packing (codeLength<<16)|symbol, indexed by
// the next MaxLen input bits read LSB-first.
type Table struct {
	Entries []uint32
	MaxLen  int
	MinLen  int
}

// CanonicalCodes assigns a canonical code to every symbol with a
// nonzero length (§4.8): count symbols per length, derive each
// length's starting code, then assign codes in symbol order,
// bit-reversed within the code's length so plain LSB-first bit
// packing reproduces RFC 1951's MSB-first-per-code transmission order.
func CanonicalCodes(lengths []int) []uint16 {
	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	count := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			count[l]++
		}
	}
	startCode := make([]int, maxLen+2)
	code := 0
	for length := 1; length <= maxLen; length++ {
		code = (code + count[length-1]) << 1
		startCode[length] = code
	}
	// The loop above computes startCode[length] from count[length-1]
	// starting with count[0] (always 0, since length 0 means unused),
	// matching startCode[len+1] = (startCode[len]+count[len])<<1 with
	// startCode[0] implicitly 0.
	next := make([]int, maxLen+1)
	copy(next, startCode)

	codes := make([]uint16, len(lengths))
	for symbol, l := range lengths {
		if l == 0 {
			continue
		}
		c := next[l]
		next[l]++
		codes[symbol] = uint16(bitio.ReverseBits(uint32(c), l))
	}
	return codes
}

// BuildTable constructs the lookup table of §3.5/§4.3 from per-symbol
// code lengths (0 = unused).
func BuildTable(lengths []int) *Table {
	codes := CanonicalCodes(lengths)

	maxLen, minLen := 0, 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l > maxLen {
			maxLen = l
		}
		if minLen == 0 || l < minLen {
			minLen = l
		}
	}
	if maxLen == 0 {
		return &Table{Entries: []uint32{}, MaxLen: 0, MinLen: 0}
	}

	entries := make([]uint32, 1<<uint(maxLen))
	for symbol, l := range lengths {
		if l == 0 {
			continue
		}
		// codes[symbol] is already bit-reversed within l bits, i.e. it
		// is exactly the low-order l-bit prefix every qualifying table
		// index must share; every index whose low l bits equal it maps
		// to this entry, stride 2^l (§4.3).
		reversed := uint32(codes[symbol])
		packed := uint32(l)<<16 | uint32(symbol)
		stride := 1 << uint(l)
		for idx := int(reversed); idx < len(entries); idx += stride {
			entries[idx] = packed
		}
	}

	return &Table{Entries: entries, MaxLen: maxLen, MinLen: minLen}
}
