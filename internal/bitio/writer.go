// Package bitio implements the MSB-first Huffman bit writer and
// LSB-first integer bit reader used by the DEFLATE codec.
package bitio

import "github.com/scigolib/deflate/internal/utils"

var reverseByteTable [256]byte

func init() {
	for i := 0; i < 256; i++ {
		b := byte(i)
		var r byte
		for j := 0; j < 8; j++ {
			r = (r << 1) | (b & 1)
			b >>= 1
		}
		reverseByteTable[i] = r
	}
}

// ReverseBits reverses the low `width` bits of value (1 <= width <= 24).
// Huffman codes are assigned already bit-reversed within their length
// (§4.8), so most callers never need this; it exists for call sites
// that hold a natural (non-reversed) code and want the writer to
// reverse it inline instead of precomputing.
func ReverseBits(value uint32, width int) uint32 {
	if width == 8 {
		return uint32(reverseByteTable[byte(value)])
	}
	var r uint32
	v := value
	for i := 0; i < width; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// Writer packs bits LSB-first into bytes, the standard DEFLATE bit
// order: canonical Huffman codes are pre-reversed at construction
// (§4.8) so that plain LSB packing reproduces the MSB-first-per-code
// transmission order RFC 1951 requires.
type Writer struct {
	buf   *utils.ByteBuffer
	acc   uint64
	nbits uint
}

// NewWriter creates a Writer backed by a fresh growable output buffer.
func NewWriter() *Writer {
	return &Writer{buf: utils.NewByteBuffer(256)}
}

// WriteBits appends the low `width` bits of value. If reverse is true
// and width > 1, value is bit-reversed within its width window before
// appending (§4.1).
func (w *Writer) WriteBits(value uint32, width int, reverse bool) {
	if width == 0 {
		return
	}
	if reverse && width > 1 {
		value = ReverseBits(value, width)
	}
	mask := uint64(1)<<uint(width) - 1
	w.acc |= (uint64(value) & mask) << w.nbits
	w.nbits += uint(width)
	for w.nbits >= 8 {
		w.buf.WriteByte(byte(w.acc))
		w.acc >>= 8
		w.nbits -= 8
	}
}

// Align flushes any partial byte, zero-padding the unused high bits,
// and returns to a byte boundary. Used before stored-block LEN/NLEN
// and raw bytes (§4.5).
func (w *Writer) Align() {
	if w.nbits > 0 {
		w.buf.WriteByte(byte(w.acc))
		w.acc = 0
		w.nbits = 0
	}
}

// WriteRawByte writes a single byte directly, bypassing the bit
// accumulator. Caller must have called Align first.
func (w *Writer) WriteRawByte(b byte) {
	w.buf.WriteByte(b)
}

// WriteRawBytes writes p directly, bypassing the bit accumulator.
// Caller must have called Align first.
func (w *Writer) WriteRawBytes(p []byte) {
	w.buf.Write(p)
}

// Finish flushes any partial byte (zero-padded) and returns the
// complete committed byte stream.
func (w *Writer) Finish() []byte {
	w.Align()
	return w.buf.Bytes()
}

// Len returns the number of whole bytes committed so far, not
// counting any partial byte still held in the accumulator.
func (w *Writer) Len() int {
	return w.buf.Len()
}
