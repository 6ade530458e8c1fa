package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC32Of(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint32
	}{
		{name: "empty", input: []byte{}, want: 0x00000000},
		{name: "hello world", input: []byte("Hello, World!"), want: 0xEC4AC3D0},
		{name: "single byte", input: []byte{0x61}, want: 0xE8B7BE43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CRC32Of(tt.input)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCRC32Incremental(t *testing.T) {
	full := CRC32Of([]byte("Hello, World!"))

	c := NewCRC32()
	c.Write([]byte("Hello, "))
	c.Write([]byte("World!"))
	require.Equal(t, full, c.Sum32())
}

func TestSingleByteCRC(t *testing.T) {
	// Property 9: single(n, crc) == (crc>>8) ^ Table[(crc^n)&0xFF].
	crc := uint32(0xFFFFFFFF)
	for _, n := range []byte("zipcrypto") {
		got := SingleByteCRC(n, crc)
		table := crc32TableLazy()
		want := table[(crc^uint32(n))&0xFF] ^ (crc >> 8)
		require.Equal(t, want, got)
		crc = got
	}
}
