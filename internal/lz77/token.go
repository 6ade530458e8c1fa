// Package lz77 implements the sliding-window match search that feeds
// the DEFLATE block encoder: a hash-chained three-byte prefix table
// with lazy matching (§4.4).
package lz77

// Tuning and format constants (§4.4).
const (
	MinMatch   = 3
	MaxMatch   = 258
	WindowSize = 32768
)

// maxChainIterations bounds how many candidates searchLongestMatch
// scans per position. Spec.md §4.4.1 does not mandate a cap; without
// one, pathological repetitive input makes chain walks quadratic in
// the number of matching positions. 128 matches zlib's default
// (level 6) chain depth: deep enough for good ratios, shallow enough
// to keep worst-case encode time linear in practice.
const maxChainIterations = 128

// TokenKind distinguishes a literal byte from a length/distance match
// in the token stream (§3.4).
type TokenKind uint8

const (
	TokenLiteral TokenKind = iota
	TokenMatch
	TokenEndOfBlock
)

// Token is one unit of the LZ77 output stream. A literal occupies
// Literal; a match carries both the raw Length/Distance (used by the
// decoder-side invariant checks and tests) and the precomputed
// code/extra-bits breakdown the block emitter writes directly (§3.4).
type Token struct {
	Kind TokenKind

	Literal byte

	Length   int
	Distance int

	LengthCode       int
	LengthExtraValue int
	LengthExtraBits  int

	DistCode       int
	DistExtraValue int
	DistExtraBits  int
}
