package lz77

// Length and distance base/extra-bits tables (§4.4.3, §6.1). LengthBase
// is indexed by code-257; DistBase is indexed by code directly.
var LengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var LengthExtraBits = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var DistBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var DistExtraBits = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// LengthCode returns the length-code (257..285, absolute), the extra
// bits value, and the extra bit count for a match length in [3,258].
func LengthCode(length int) (code, extraValue, extraBits int) {
	for i := len(LengthBase) - 1; i >= 0; i-- {
		if length >= LengthBase[i] {
			return 257 + i, length - LengthBase[i], LengthExtraBits[i]
		}
	}
	return 257, 0, 0
}

// DistCode returns the distance code (0..29), the extra bits value,
// and the extra bit count for a backward distance in [1,32768].
func DistCode(dist int) (code, extraValue, extraBits int) {
	for i := len(DistBase) - 1; i >= 0; i-- {
		if dist >= DistBase[i] {
			return i, dist - DistBase[i], DistExtraBits[i]
		}
	}
	return 0, 0, 0
}
