package utils

import "sync"

var scratchPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

// GetScratch returns a byte slice of length size from the pool, or a
// freshly allocated one if the pooled capacity is too small.
func GetScratch(size int) []byte {
	buf := scratchPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size, size*2)
	}
	return buf[:size]
}

// ReleaseScratch returns a buffer obtained from GetScratch to the pool.
func ReleaseScratch(buf []byte) {
	//nolint:staticcheck // slice descriptor copy is fine for sync.Pool reuse
	scratchPool.Put(buf[:0])
}

// ByteBuffer is a growable output buffer with capacity distinct from
// length, doubling on overflow (spec.md §3.1). Unlike bytes.Buffer it
// exposes the backing array directly so LZ77 back-references into
// already-written output remain addressable without copying.
type ByteBuffer struct {
	data []byte
}

// NewByteBuffer allocates a ByteBuffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity < 64 {
		capacity = 64
	}
	return &ByteBuffer{data: make([]byte, 0, capacity)}
}

// Len returns the number of committed bytes.
func (b *ByteBuffer) Len() int { return len(b.data) }

// Bytes returns the committed bytes. The returned slice aliases the
// buffer's backing array and is only valid until the next write.
func (b *ByteBuffer) Bytes() []byte { return b.data }

// Grow ensures capacity for n more bytes, doubling the backing array
// (or growing to fit n, whichever is larger) when it would overflow.
func (b *ByteBuffer) Grow(n int) {
	if len(b.data)+n <= cap(b.data) {
		return
	}
	newCap := cap(b.data) * 2
	if newCap < len(b.data)+n {
		newCap = len(b.data) + n
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// WriteByte appends a single byte, growing the buffer if needed.
func (b *ByteBuffer) WriteByte(c byte) {
	b.Grow(1)
	b.data = append(b.data, c)
}

// Write appends p, growing the buffer if needed.
func (b *ByteBuffer) Write(p []byte) {
	b.Grow(len(p))
	b.data = append(b.data, p...)
}

// At returns the byte at index i; callers are expected to have
// validated i is in range (used for self-overlapping LZ77 copies where
// the bounds check already happened in the decoder loop).
func (b *ByteBuffer) At(i int) byte { return b.data[i] }

// Truncate shortens the buffer to length n.
func (b *ByteBuffer) Truncate(n int) { b.data = b.data[:n] }
