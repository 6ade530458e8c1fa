// Package zipcrypto implements the PKZIP "traditional" stream cipher
// (§4.12): a 96-bit key schedule updated one plaintext byte at a time,
// driving a keystream generator XORed against the data.
//
// This cipher is cryptographically broken; it exists here only for
// compatibility with archives produced by legacy tools.
package zipcrypto

import (
	"github.com/scigolib/deflate/internal/checksum"
	"github.com/scigolib/deflate/internal/utils"
)

// Cipher holds the three 32-bit key-schedule words (§4.12).
type Cipher struct {
	key [3]uint32
}

// New derives a Cipher's initial key state from password by running
// updateKeys over each of its bytes in turn, starting from the fixed
// seed (0x12345678, 0x23456789, 0x34567890).
func New(password []byte) *Cipher {
	c := &Cipher{key: [3]uint32{0x12345678, 0x23456789, 0x34567890}}
	for _, b := range password {
		c.update(b)
	}
	return c
}

func (c *Cipher) update(b byte) {
	c.key[0] = checksum.SingleByteCRC(b, c.key[0])
	c.key[1] = (c.key[1]+(c.key[0]&0xFF))*134775813 + 1
	c.key[2] = checksum.SingleByteCRC(byte(c.key[1]>>24), c.key[2])
}

func (c *Cipher) keystreamByte() byte {
	tmp := (c.key[2] | 2) & 0xFFFF
	return byte(((tmp * (tmp ^ 1)) >> 8) & 0xFF)
}

// EncryptByte encrypts one plaintext byte and advances the key
// schedule from the plaintext, per §4.12.
func (c *Cipher) EncryptByte(p byte) byte {
	ks := c.keystreamByte()
	c.update(p)
	return ks ^ p
}

// DecryptByte decrypts one ciphertext byte and advances the key
// schedule from the recovered plaintext.
func (c *Cipher) DecryptByte(ct byte) byte {
	ks := c.keystreamByte()
	p := ks ^ ct
	c.update(p)
	return p
}

// EncryptionHeaderSize is the length of the per-entry header prepended
// before the encrypted payload (§4.12).
const EncryptionHeaderSize = 12

// crcHighByteIndex is where the high byte of the entry's CRC-32 is
// encoded within the 12-byte encryption header. RFC-adjacent PKZIP
// documentation and most interoperable implementations place it at
// the last byte (index 11); this is the convention used on both
// encrypt and decrypt here (Open Question, see DESIGN.md).
const crcHighByteIndex = EncryptionHeaderSize - 1

// EncryptHeader builds and encrypts the 12-byte encryption header for
// an entry whose uncompressed CRC-32 is crc, using randomBytes (which
// must supply at least 11 bytes) as the pseudo-random header fill.
func (c *Cipher) EncryptHeader(crc uint32, randomBytes []byte) []byte {
	header := utils.GetScratch(EncryptionHeaderSize)
	defer utils.ReleaseScratch(header)
	copy(header, randomBytes[:EncryptionHeaderSize-1])
	header[crcHighByteIndex] = byte(crc >> 24)

	out := make([]byte, EncryptionHeaderSize)
	for i, b := range header {
		out[i] = c.EncryptByte(b)
	}
	return out
}

// DecryptHeader decrypts and discards the 12-byte encryption header,
// advancing the key schedule identically to EncryptHeader.
func (c *Cipher) DecryptHeader(encrypted []byte) {
	for _, b := range encrypted[:EncryptionHeaderSize] {
		c.DecryptByte(b)
	}
}

// Encrypt encrypts data in place order, returning a new slice; the
// cipher's internal state advances across the whole call.
func (c *Cipher) Encrypt(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = c.EncryptByte(b)
	}
	return out
}

// Decrypt decrypts data, returning a new slice.
func (c *Cipher) Decrypt(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = c.DecryptByte(b)
	}
	return out
}
