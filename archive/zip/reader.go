package zip

import (
	"encoding/binary"
	"time"

	"github.com/scigolib/deflate/internal/checksum"
	"github.com/scigolib/deflate/internal/flate"
	"github.com/scigolib/deflate/internal/utils"
	"github.com/scigolib/deflate/internal/zipcrypto"
)

const maxEOCDCommentScan = 65535 + 22

// OpenOptions configures Open (§6.5, `Unzip(bytes, {...})`).
type OpenOptions struct {
	Password string
	// Verify, when true, makes Decompress check the entry's CRC-32
	// against the decoded output.
	Verify bool
}

// DecompressOptions overrides OpenOptions.Password/Verify for a
// single Decompress call.
type DecompressOptions struct {
	Password string
	Verify   *bool
}

type centralEntry struct {
	name       string
	comment    string
	method     CompressionMethod
	encrypted  bool
	crc32      uint32
	compSize   uint32
	uncompSize uint32
	date       uint16
	timeField  uint16
	offset     uint32
}

// Reader parses a ZIP byte stream's central directory and decodes
// entries on demand (§6.5, `Unzip`).
type Reader struct {
	data     []byte
	entries  []centralEntry
	byName   map[string]int
	password string
	verify   bool
}

// Open parses data's end-of-central-directory record and central
// directory, without decompressing any entry yet.
func Open(data []byte, opts OpenOptions) (*Reader, error) {
	const op = "zip: open"
	eocdOffset, err := findEOCD(data)
	if err != nil {
		return nil, err
	}

	totalEntries := int(binary.LittleEndian.Uint16(data[eocdOffset+10 : eocdOffset+12]))
	centralSize := binary.LittleEndian.Uint32(data[eocdOffset+12 : eocdOffset+16])
	centralOffset := binary.LittleEndian.Uint32(data[eocdOffset+16 : eocdOffset+20])

	if err := utils.ValidateBufferSize(uint64(centralSize), utils.MaxDecodeGrowth, "zip central directory size"); err != nil {
		return nil, utils.Wrap(op, utils.KindBadInputSize, err)
	}
	if uint64(centralOffset)+uint64(centralSize) > uint64(len(data)) {
		return nil, utils.New(op, utils.KindTruncatedInput)
	}
	// A forged EOCD could claim far more entries than the central
	// directory actually has room for; catch that before looping
	// totalEntries times instead of failing one parseCentralEntry call
	// at a time.
	minSize, err := utils.SafeMultiply(uint64(totalEntries), minCentralEntrySize)
	if err != nil {
		return nil, utils.Wrap(op, utils.KindBadInputSize, err)
	}
	if minSize > uint64(centralSize) {
		return nil, utils.New(op, utils.KindTruncatedInput)
	}

	r := &Reader{data: data, byName: make(map[string]int), password: opts.Password, verify: opts.Verify}

	pos := int(centralOffset)
	for i := 0; i < totalEntries; i++ {
		ce, next, err := parseCentralEntry(data, pos)
		if err != nil {
			return nil, err
		}
		r.byName[ce.name] = len(r.entries)
		r.entries = append(r.entries, ce)
		pos = next
	}
	return r, nil
}

// SetPassword sets the archive-wide password used by Decompress calls
// that don't override it via DecompressOptions.Password.
func (r *Reader) SetPassword(password string) {
	r.password = password
}

// Filenames returns entry names in central-directory order.
func (r *Reader) Filenames() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// ModTime returns the entry's DOS-encoded modification time as a
// time.Time, or the zero value if the name is not present.
func (r *Reader) ModTime(name string) time.Time {
	idx, ok := r.byName[name]
	if !ok {
		return time.Time{}
	}
	e := r.entries[idx]
	return timeFromDOS(e.date, e.timeField)
}

// Decompress returns the original bytes for the named entry (§6.5,
// `Unzip.decompress(filename, {...})`).
func (r *Reader) Decompress(name string, opts DecompressOptions) ([]byte, error) {
	const op = "zip: decompress entry"
	idx, ok := r.byName[name]
	if !ok {
		return nil, utils.New(op, utils.KindIndexOutOfRange)
	}
	e := r.entries[idx]

	if err := utils.ValidateBufferSize(uint64(e.uncompSize), utils.MaxDecodeGrowth, "zip entry uncompressed size"); err != nil {
		return nil, utils.Wrap(op, utils.KindBadInputSize, err)
	}

	body, err := r.entryBody(e)
	if err != nil {
		return nil, err
	}

	password := opts.Password
	if password == "" {
		password = r.password
	}

	if e.encrypted {
		if password == "" {
			return nil, utils.New(op, utils.KindEncryptionRequired)
		}
		cipher := zipcrypto.New([]byte(password))
		if len(body) < zipcrypto.EncryptionHeaderSize {
			return nil, utils.New(op, utils.KindTruncatedInput)
		}
		cipher.DecryptHeader(body[:zipcrypto.EncryptionHeaderSize])
		body = cipher.Decrypt(body[zipcrypto.EncryptionHeaderSize:])
	}

	var out []byte
	switch e.method {
	case MethodStored:
		out = body
	case MethodDeflate:
		out, err = flate.Decompress(body, flate.DecompressOptions{})
		if err != nil {
			return nil, err
		}
	default:
		return nil, utils.New(op, utils.KindUnsupportedFeature)
	}

	verify := r.verify
	if opts.Verify != nil {
		verify = *opts.Verify
	}
	if verify {
		if checksum.CRC32Of(out) != e.crc32 {
			return nil, utils.New(op, utils.KindChecksumMismatch)
		}
	}
	return out, nil
}

// entryBody locates an entry's on-disk payload by re-reading its
// local file header (name/extra field lengths there are authoritative
// for locating the data start; size/CRC are trusted from the central
// directory per §6.4).
func (r *Reader) entryBody(e centralEntry) ([]byte, error) {
	const op = "zip: locate entry body"
	if uint64(e.offset)+30 > uint64(len(r.data)) {
		return nil, utils.New(op, utils.KindTruncatedInput)
	}
	sig := binary.LittleEndian.Uint32(r.data[e.offset : e.offset+4])
	if sig != sigLocalFileHeader {
		return nil, utils.New(op, utils.KindInvalidHeader)
	}
	nameLen := binary.LittleEndian.Uint16(r.data[e.offset+26 : e.offset+28])
	extraLen := binary.LittleEndian.Uint16(r.data[e.offset+28 : e.offset+30])

	dataStart := uint64(e.offset) + 30 + uint64(nameLen) + uint64(extraLen)
	dataEnd := dataStart + uint64(e.compSize)
	if dataEnd > uint64(len(r.data)) {
		return nil, utils.New(op, utils.KindTruncatedInput)
	}
	return r.data[dataStart:dataEnd], nil
}

func parseCentralEntry(data []byte, pos int) (centralEntry, int, error) {
	const op = "zip: parse central directory entry"
	if pos+46 > len(data) {
		return centralEntry{}, 0, utils.New(op, utils.KindTruncatedInput)
	}
	if binary.LittleEndian.Uint32(data[pos:pos+4]) != sigCentralDirectoryFile {
		return centralEntry{}, 0, utils.New(op, utils.KindInvalidHeader)
	}
	flags := binary.LittleEndian.Uint16(data[pos+8 : pos+10])
	method := CompressionMethod(binary.LittleEndian.Uint16(data[pos+10 : pos+12]))
	timeField := binary.LittleEndian.Uint16(data[pos+12 : pos+14])
	date := binary.LittleEndian.Uint16(data[pos+14 : pos+16])
	crc32 := binary.LittleEndian.Uint32(data[pos+16 : pos+20])
	compSize := binary.LittleEndian.Uint32(data[pos+20 : pos+24])
	uncompSize := binary.LittleEndian.Uint32(data[pos+24 : pos+28])
	nameLen := int(binary.LittleEndian.Uint16(data[pos+28 : pos+30]))
	extraLen := int(binary.LittleEndian.Uint16(data[pos+30 : pos+32]))
	commentLen := int(binary.LittleEndian.Uint16(data[pos+32 : pos+34]))
	offset := binary.LittleEndian.Uint32(data[pos+42 : pos+46])

	fieldsEnd := pos + 46 + nameLen + extraLen + commentLen
	if fieldsEnd > len(data) {
		return centralEntry{}, 0, utils.New(op, utils.KindTruncatedInput)
	}
	name := string(data[pos+46 : pos+46+nameLen])
	comment := string(data[pos+46+nameLen+extraLen : fieldsEnd])

	ce := centralEntry{
		name:       name,
		comment:    comment,
		method:     method,
		encrypted:  flags&flagEncrypted != 0,
		crc32:      crc32,
		compSize:   compSize,
		uncompSize: uncompSize,
		date:       date,
		timeField:  timeField,
		offset:     offset,
	}
	return ce, fieldsEnd, nil
}

func findEOCD(data []byte) (int, error) {
	const op = "zip: find end of central directory"
	if len(data) < 22 {
		return 0, utils.New(op, utils.KindTruncatedInput)
	}
	scanFrom := len(data) - maxEOCDCommentScan
	if scanFrom < 0 {
		scanFrom = 0
	}
	for i := len(data) - 22; i >= scanFrom; i-- {
		if binary.LittleEndian.Uint32(data[i:i+4]) == sigEndOfCentralDir {
			return i, nil
		}
	}
	return 0, utils.New(op, utils.KindInvalidHeader)
}
