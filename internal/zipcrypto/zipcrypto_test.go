package zipcrypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	password := []byte("secret")
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	enc := New(password)
	ciphertext := enc.Encrypt(plaintext)
	require.NotEqual(t, plaintext, ciphertext)

	dec := New(password)
	got := dec.Decrypt(ciphertext)
	require.Equal(t, plaintext, got)
}

func TestEncryptionHeaderRoundTrip(t *testing.T) {
	password := []byte("hunter2")
	var crc uint32 = 0xDEADBEEF
	random := bytes.Repeat([]byte{0x42}, EncryptionHeaderSize-1)

	enc := New(password)
	header := enc.EncryptHeader(crc, random)
	require.Len(t, header, EncryptionHeaderSize)

	plaintext := []byte("payload bytes follow the header")
	ciphertext := enc.Encrypt(plaintext)

	dec := New(password)
	dec.DecryptHeader(header)
	got := dec.Decrypt(ciphertext)
	require.Equal(t, plaintext, got)
}

func TestWrongPasswordProducesDifferentPlaintext(t *testing.T) {
	plaintext := []byte("confidential")
	enc := New([]byte("right"))
	ciphertext := enc.Encrypt(plaintext)

	dec := New([]byte("wrong"))
	got := dec.Decrypt(ciphertext)
	require.NotEqual(t, plaintext, got)
}
