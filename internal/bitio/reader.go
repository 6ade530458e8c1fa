package bitio

import "github.com/scigolib/deflate/internal/utils"

// Reader reads bits LSB-first from an input byte slice, refilling 8
// bits at a time (§4.2, §3.3).
type Reader struct {
	data  []byte
	pos   int
	acc   uint64
	nbits uint
}

// NewReader wraps data for bit-level reading starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// fill tops the accumulator up to at least need bits, or as many as
// the remaining input allows.
func (r *Reader) fill(need int) {
	for r.nbits < uint(need) && r.pos < len(r.data) {
		r.acc |= uint64(r.data[r.pos]) << r.nbits
		r.pos++
		r.nbits += 8
	}
}

// ReadBits returns the next n bits LSB-first (n <= 32). Fails with
// TruncatedInput if fewer than n bits remain in the input.
func (r *Reader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	r.fill(n)
	if r.nbits < uint(n) {
		return 0, utils.New("bitio: read bits", utils.KindTruncatedInput)
	}
	mask := uint64(1)<<uint(n) - 1
	v := uint32(r.acc & mask)
	r.acc >>= uint(n)
	r.nbits -= uint(n)
	return v, nil
}

// PeekBits returns the next n bits without consuming them. Near end of
// input fewer than n bits may be buffered (see Avail); the missing
// high bits read as zero, the table-lookup tolerance huffman.Decode
// relies on.
func (r *Reader) PeekBits(n int) uint32 {
	r.fill(n)
	mask := uint64(1)<<uint(n) - 1
	return uint32(r.acc & mask)
}

// Avail reports how many buffered bits are currently valid (after the
// most recent fill).
func (r *Reader) Avail() int {
	return int(r.nbits)
}

// Consume discards n already-peeked bits.
func (r *Reader) Consume(n int) {
	r.acc >>= uint(n)
	r.nbits -= uint(n)
}

// Align discards bits up to the next byte boundary (§4.9 BTYPE 00).
func (r *Reader) Align() {
	drop := r.nbits % 8
	r.acc >>= drop
	r.nbits -= drop
}

// ReadAlignedBytes reads n raw bytes; caller must have called Align
// first so the accumulator holds only whole bytes.
func (r *Reader) ReadAlignedBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(b)
	}
	return out, nil
}

// BytesConsumed returns how many input bytes have actually been used.
// Call Align first so any sub-byte padding in the final partial byte
// is discarded; the remaining nbits are then whole bytes that were
// pre-fetched by fill but never consumed, and are returned to the
// stream's cursor (§4.9) so a container trailer immediately following
// the compressed payload can be read as raw bytes.
func (r *Reader) BytesConsumed() int {
	return r.pos - int(r.nbits/8)
}
