// Package zip implements the PKZIP archive format: local file
// headers, the central directory, the end-of-central-directory
// record, and traditional ZipCrypto per-entry encryption (§6.4).
package zip

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/scigolib/deflate/internal/checksum"
	"github.com/scigolib/deflate/internal/flate"
	"github.com/scigolib/deflate/internal/utils"
	"github.com/scigolib/deflate/internal/zipcrypto"
)

// Archive accumulates entries via AddFile and serializes them into a
// ZIP byte stream with Compress (§6.5, the `Zip` object).
type Archive struct {
	entries  []*entry
	password string
}

// NewArchive creates an empty Archive.
func NewArchive() *Archive {
	return &Archive{}
}

// SetPassword sets the archive-wide password used to encrypt entries
// that don't specify their own FileOptions.Password.
func (a *Archive) SetPassword(password string) {
	a.password = password
}

// AddFile stores data under filename, compressing and/or encrypting
// it per opts (§6.5).
func (a *Archive) AddFile(data []byte, filename string, opts FileOptions) {
	method := MethodDeflate
	if opts.Compress != nil && !*opts.Compress {
		method = MethodStored
	}
	if opts.Method != nil {
		method = *opts.Method
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	e := &entry{
		name:       filename,
		comment:    opts.Comment,
		extra:      opts.ExtraField,
		date:       date,
		method:     method,
		crc32:      checksum.CRC32Of(data),
		uncompSize: uint32(len(data)),
	}

	var payload []byte
	switch method {
	case MethodStored:
		payload = data
	default:
		payload = flate.Compress(data, flate.CompressOptions{Type: flate.TypeDynamic, Lazy: opts.DeflateLazy})
	}

	password := opts.Password
	if password == "" {
		password = a.password
	}
	if password != "" {
		e.encrypted = true
		cipher := zipcrypto.New([]byte(password))
		random := utils.GetScratch(zipcrypto.EncryptionHeaderSize - 1)
		_, _ = rand.Read(random)
		header := cipher.EncryptHeader(e.crc32, random)
		utils.ReleaseScratch(random)
		body := make([]byte, 0, len(header)+len(payload))
		body = append(body, header...)
		body = append(body, cipher.Encrypt(payload)...)
		e.body = body
	} else {
		e.body = payload
	}

	a.entries = append(a.entries, e)
}

// Compress serializes all added entries into a complete ZIP byte
// stream (§6.4, §6.5 `Zip.compress()`).
func (a *Archive) Compress() []byte {
	var out []byte

	for _, e := range a.entries {
		e.localHeaderOffset = uint32(len(out))
		out = append(out, encodeLocalHeader(e)...)
	}

	centralStart := uint32(len(out))
	for _, e := range a.entries {
		out = append(out, encodeCentralDirectoryEntry(e)...)
	}
	centralSize := uint32(len(out)) - centralStart

	out = append(out, encodeEOCD(len(a.entries), centralSize, centralStart)...)
	return out
}

func encodeLocalHeader(e *entry) []byte {
	date, timeField := dosDateTime(e.date)
	var flags uint16
	if e.encrypted {
		flags |= flagEncrypted
	}

	buf := make([]byte, 30)
	binary.LittleEndian.PutUint32(buf[0:4], sigLocalFileHeader)
	binary.LittleEndian.PutUint16(buf[4:6], versionNeeded)
	binary.LittleEndian.PutUint16(buf[6:8], flags)
	binary.LittleEndian.PutUint16(buf[8:10], uint16(e.method))
	binary.LittleEndian.PutUint16(buf[10:12], timeField)
	binary.LittleEndian.PutUint16(buf[12:14], date)
	binary.LittleEndian.PutUint32(buf[14:18], e.crc32)
	binary.LittleEndian.PutUint32(buf[18:22], uint32(len(e.body)))
	binary.LittleEndian.PutUint32(buf[22:26], e.uncompSize)
	binary.LittleEndian.PutUint16(buf[26:28], uint16(len(e.name)))
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(e.extra)))

	buf = append(buf, []byte(e.name)...)
	buf = append(buf, e.extra...)
	buf = append(buf, e.body...)
	return buf
}

func encodeCentralDirectoryEntry(e *entry) []byte {
	date, timeField := dosDateTime(e.date)
	var flags uint16
	if e.encrypted {
		flags |= flagEncrypted
	}

	buf := make([]byte, 46)
	binary.LittleEndian.PutUint32(buf[0:4], sigCentralDirectoryFile)
	buf[4] = versionNeeded & 0xFF // version made by: low byte only, OS byte left 0 (MS-DOS)
	buf[5] = 0
	binary.LittleEndian.PutUint16(buf[6:8], versionNeeded)
	binary.LittleEndian.PutUint16(buf[8:10], flags)
	binary.LittleEndian.PutUint16(buf[10:12], uint16(e.method))
	binary.LittleEndian.PutUint16(buf[12:14], timeField)
	binary.LittleEndian.PutUint16(buf[14:16], date)
	binary.LittleEndian.PutUint32(buf[16:20], e.crc32)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(len(e.body)))
	binary.LittleEndian.PutUint32(buf[24:28], e.uncompSize)
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(e.name)))
	binary.LittleEndian.PutUint16(buf[30:32], uint16(len(e.extra)))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(len(e.comment)))
	binary.LittleEndian.PutUint16(buf[34:36], 0) // disk number
	binary.LittleEndian.PutUint16(buf[36:38], 0) // internal attributes
	binary.LittleEndian.PutUint32(buf[38:42], 0) // external attributes
	binary.LittleEndian.PutUint32(buf[42:46], e.localHeaderOffset)

	buf = append(buf, []byte(e.name)...)
	buf = append(buf, e.extra...)
	buf = append(buf, []byte(e.comment)...)
	return buf
}

func encodeEOCD(entryCount int, centralSize, centralOffset uint32) []byte {
	buf := make([]byte, 22)
	binary.LittleEndian.PutUint32(buf[0:4], sigEndOfCentralDir)
	binary.LittleEndian.PutUint16(buf[4:6], 0) // disk number
	binary.LittleEndian.PutUint16(buf[6:8], 0) // start disk
	binary.LittleEndian.PutUint16(buf[8:10], uint16(entryCount))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(entryCount))
	binary.LittleEndian.PutUint32(buf[12:16], centralSize)
	binary.LittleEndian.PutUint32(buf[16:20], centralOffset)
	binary.LittleEndian.PutUint16(buf[20:22], 0) // comment length
	return buf
}
