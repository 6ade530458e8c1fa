package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdler32Of(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint32
	}{
		{name: "empty", input: []byte{}, want: 0x00000001},
		{name: "hello world", input: []byte("Hello, World!"), want: 0x1F9E046A},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Adler32Of(tt.input))
		})
	}
}

func TestAdler32Incremental(t *testing.T) {
	full := Adler32Of([]byte("Hello, World!"))

	a := NewAdler32()
	a.Write([]byte("Hello, "))
	a.Write([]byte("World!"))
	require.Equal(t, full, a.Sum32())
}

func TestAdler32LargeInputChunking(t *testing.T) {
	data := make([]byte, 5000)
	for i := range data {
		data[i] = byte(i)
	}
	require.Equal(t, uint32(0x0DB49AE4), Adler32Of(data)) // cross-checked against a reference implementation
}
