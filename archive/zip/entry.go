package zip

import "time"

// CompressionMethod selects how an entry's payload is stored (§6.4).
type CompressionMethod uint16

const (
	MethodStored  CompressionMethod = 0
	MethodDeflate CompressionMethod = 8
)

const (
	sigLocalFileHeader      = 0x04034b50
	sigCentralDirectoryFile = 0x02014b50
	sigEndOfCentralDir      = 0x06054b50

	versionNeeded = 20 // 2.0, the lowest version that covers deflate

	flagEncrypted = 1 << 0

	// minCentralEntrySize is a central directory entry's fixed-width
	// portion, excluding name/extra/comment (§6.4).
	minCentralEntrySize = 46
)

// FileOptions configures a single AddFile call (§6.5,
// `Zip.addFile(bytes, filename, {...})`).
type FileOptions struct {
	// Method pins the wire compression method explicitly; nil (the
	// zero value) means auto, which is MethodDeflate unless Compress
	// says otherwise. A pointer is used because CompressionMethod's
	// own zero value (MethodStored) would otherwise be indistinguishable
	// from "not set".
	Method *CompressionMethod
	// Compress, when explicitly false, resolves the auto method above
	// to MethodStored. Ignored if Method is set.
	Compress *bool
	// Password overrides the archive-wide password for this entry
	// only; leave empty to use the archive's SetPassword value (if
	// any) or to store the entry unencrypted.
	Password   string
	ExtraField []byte
	Comment    string
	Date       time.Time

	DeflateLazy int
}

type entry struct {
	name       string
	comment    string
	extra      []byte
	date       time.Time
	method     CompressionMethod
	encrypted  bool
	crc32      uint32
	uncompSize uint32

	// body is the final on-disk payload: compressed (or stored) bytes,
	// optionally prefixed with a 12-byte ZipCrypto header and then
	// encrypted in place.
	body []byte

	localHeaderOffset uint32
}
