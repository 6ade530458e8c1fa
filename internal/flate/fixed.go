package flate

import "github.com/scigolib/deflate/internal/huffman"

// codeLengthPermutation is the order HCLEN lengths are transmitted in
// (§6.1); index k holds the code-length alphabet symbol for slot k.
var codeLengthPermutation = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// codebook pairs a symbol's code length with its canonical code, the
// form the bit writer needs (§4.8); huffman.Table is the mirror image
// built for decode-side lookup.
type codebook struct {
	lengths []int
	codes   []uint16
}

func newCodebook(lengths []int) codebook {
	return codebook{lengths: lengths, codes: huffman.CanonicalCodes(lengths)}
}

var fixedLiteralBook codebook
var fixedDistanceBook codebook
var fixedLiteralTable *huffman.Table
var fixedDistanceTable *huffman.Table

func init() {
	lengths := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lengths[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lengths[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lengths[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lengths[i] = 8
	}
	fixedLiteralBook = newCodebook(lengths)
	fixedLiteralTable = huffman.BuildTable(lengths)

	distLengths := make([]int, 30)
	for i := range distLengths {
		distLengths[i] = 5
	}
	fixedDistanceBook = newCodebook(distLengths)
	fixedDistanceTable = huffman.BuildTable(distLengths)
}
