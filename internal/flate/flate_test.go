package flate

import (
	"bytes"
	stdflate "compress/flate"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, data []byte, typ CompressionType, lazy int) []byte {
	t.Helper()
	compressed := Compress(data, CompressOptions{Type: typ, Lazy: lazy})
	got, err := Decompress(compressed, DecompressOptions{})
	require.NoError(t, err)
	require.Equal(t, data, got)
	return compressed
}

func TestRoundTripAcrossModes(t *testing.T) {
	samples := [][]byte{
		{},
		[]byte("a"),
		[]byte("Hello, World!"),
		[]byte("AAAAAAAA"),
		bytes.Repeat([]byte{0x61}, 70000),
		sequentialBytes(256),
		randomBytes(4096),
	}
	for _, data := range samples {
		roundTrip(t, data, TypeNone, 0)
		roundTrip(t, data, TypeFixed, 0)
		roundTrip(t, data, TypeDynamic, 0)
		roundTrip(t, data, TypeDynamic, 8)
	}
}

func TestCompressDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")
	a := Compress(data, CompressOptions{Type: TypeDynamic, Lazy: 8})
	b := Compress(data, CompressOptions{Type: TypeDynamic, Lazy: 8})
	require.Equal(t, a, b)
}

func TestEmptyInputProducesSingleFinalBlock(t *testing.T) {
	out := Compress(nil, CompressOptions{Type: TypeNone})
	require.NotEmpty(t, out)
	got, err := Decompress(out, DecompressOptions{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestHighlyRepetitiveInputCompressesWell(t *testing.T) {
	data := bytes.Repeat([]byte{0x61}, 70000)
	out := Compress(data, CompressOptions{Type: TypeDynamic, Lazy: 32})
	require.Less(t, len(out), len(data)/100)
}

func TestReservedBlockTypeRejected(t *testing.T) {
	// BFINAL=1, BTYPE=11 packed into the first byte's low 3 bits.
	_, err := Decompress([]byte{0x07}, DecompressOptions{})
	require.Error(t, err)
}

func TestStoredBlockLengthMismatchRejected(t *testing.T) {
	encoded := Compress([]byte("hi"), CompressOptions{Type: TypeNone})
	corrupt := make([]byte, len(encoded))
	copy(corrupt, encoded)
	corrupt[3] ^= 0xFF // flip every bit of NLEN's low byte
	_, err := Decompress(corrupt, DecompressOptions{})
	require.Error(t, err)
}

// TestInteropWithStandardLibrary cross-validates against compress/flate
// in both directions: this package's own encoder must produce a raw
// DEFLATE stream the standard library decodes identically, and this
// package's decoder must correctly decode a stream the standard
// library itself encoded (spec.md §8 property 5).
func TestInteropWithStandardLibrary(t *testing.T) {
	samples := [][]byte{
		{},
		[]byte("Hello, World!"),
		bytes.Repeat([]byte("the quick brown fox "), 500),
		randomBytes(8192),
	}

	for _, data := range samples {
		encoded := Compress(data, CompressOptions{Type: TypeDynamic, Lazy: 8})
		stdReader := stdflate.NewReader(bytes.NewReader(encoded))
		got, err := io.ReadAll(stdReader)
		require.NoError(t, stdReader.Close())
		require.NoError(t, err)
		require.Equal(t, data, got)

		var buf bytes.Buffer
		stdWriter, err := stdflate.NewWriter(&buf, stdflate.BestCompression)
		require.NoError(t, err)
		_, err = stdWriter.Write(data)
		require.NoError(t, err)
		require.NoError(t, stdWriter.Close())

		decoded, err := Decompress(buf.Bytes(), DecompressOptions{})
		require.NoError(t, err)
		require.Equal(t, data, decoded)
	}
}

func sequentialBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func randomBytes(n int) []byte {
	r := rand.New(rand.NewSource(1))
	out := make([]byte, n)
	r.Read(out)
	return out
}
