package huffman

import (
	"github.com/scigolib/deflate/internal/bitio"
	"github.com/scigolib/deflate/internal/utils"
)

// Decode reads one symbol from r using table t (§4.2 readCode): peek
// MaxLen bits (tolerating a partial refill at end of input), look up
// the packed entry, and consume exactly the packed code length. Fails
// with InvalidCodeLength if the decoded length exceeds the bits
// actually buffered.
func Decode(r *bitio.Reader, t *Table) (int, error) {
	if t.MaxLen == 0 {
		return 0, utils.New("huffman: decode", utils.KindInvalidCodeLength)
	}
	peek := r.PeekBits(t.MaxLen)
	entry := t.Entries[peek]
	codeLen := int(entry >> 16)
	if codeLen == 0 || codeLen > r.Avail() {
		return 0, utils.New("huffman: decode", utils.KindInvalidCodeLength)
	}
	r.Consume(codeLen)
	return int(entry & 0xFFFF), nil
}
