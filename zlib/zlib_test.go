package zlib

import (
	"bytes"
	stdzlib "compress/zlib"
	"io"
	"testing"

	"github.com/scigolib/deflate/internal/checksum"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAcrossLevels(t *testing.T) {
	data := []byte("Hello, World!")
	for level := 0; level <= 9; level++ {
		compressed := Compress(data, CompressOptions{Level: level})
		got, err := Decompress(compressed, DecompressOptions{Verify: true})
		require.NoError(t, err)
		require.Equal(t, data, got)
	}
}

func TestHeaderChecksProperty(t *testing.T) {
	compressed := Compress([]byte("abc"), CompressOptions{Level: 6})
	require.Equal(t, 0, (int(compressed[0])*256+int(compressed[1]))%31)
}

func TestAdler32MatchesTrailer(t *testing.T) {
	data := []byte("Hello, World!")
	compressed := Compress(data, CompressOptions{Level: 6})
	trailer := compressed[len(compressed)-4:]
	want := checksum.Adler32Of(data)
	got := uint32(trailer[0])<<24 | uint32(trailer[1])<<16 | uint32(trailer[2])<<8 | uint32(trailer[3])
	require.Equal(t, want, got)
}

func TestEmptyInput(t *testing.T) {
	compressed := Compress(nil, CompressOptions{Level: 0})
	require.Equal(t, byte(0x78), compressed[0])
	got, err := Decompress(compressed, DecompressOptions{Verify: true})
	require.NoError(t, err)
	require.Empty(t, got)

	trailer := compressed[len(compressed)-4:]
	require.Equal(t, []byte{0, 0, 0, 1}, trailer)
}

func TestCorruptTrailerFailsVerify(t *testing.T) {
	data := []byte("Hello, World!")
	compressed := Compress(data, CompressOptions{Level: 6})
	compressed[len(compressed)-1] ^= 0xFF
	_, err := Decompress(compressed, DecompressOptions{Verify: true})
	require.Error(t, err)
}

// TestInteropWithStandardLibrary cross-validates against compress/zlib
// in both directions (spec.md §8 property 5).
func TestInteropWithStandardLibrary(t *testing.T) {
	data := bytes.Repeat([]byte("Hello, World! "), 200)

	compressed := Compress(data, CompressOptions{Level: 6})
	stdReader, err := stdzlib.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	got, err := io.ReadAll(stdReader)
	require.NoError(t, stdReader.Close())
	require.NoError(t, err)
	require.Equal(t, data, got)

	var buf bytes.Buffer
	stdWriter := stdzlib.NewWriter(&buf)
	_, err = stdWriter.Write(data)
	require.NoError(t, err)
	require.NoError(t, stdWriter.Close())

	decoded, err := Decompress(buf.Bytes(), DecompressOptions{Verify: true})
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestWrongCMFRejected(t *testing.T) {
	compressed := Compress([]byte("x"), CompressOptions{Level: 6})
	compressed[0] = 0x79
	_, err := Decompress(compressed, DecompressOptions{})
	require.Error(t, err)
}
