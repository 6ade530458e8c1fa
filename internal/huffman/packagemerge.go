package huffman

// packageMergeItem is one entry in a package-merge coin list: a weight
// and the multiset of original leaf (symbol-rank) indices folded into
// it. A leaf's final code length is the number of times its index
// appears across the 2*(n-1) cheapest items selected at the top level
// (§4.6): every level a leaf survives unpackaged, or is nested inside
// a surviving package, adds one bit to its code.
type packageMergeItem struct {
	weight  uint64
	symbols []int
}

func mergeAscending(a, b []packageMergeItem) []packageMergeItem {
	out := make([]packageMergeItem, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].weight <= b[j].weight {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func pairUp(list []packageMergeItem) []packageMergeItem {
	n := len(list) / 2
	packages := make([]packageMergeItem, n)
	for k := 0; k < n; k++ {
		x, y := list[2*k], list[2*k+1]
		merged := make([]int, 0, len(x.symbols)+len(y.symbols))
		merged = append(merged, x.symbols...)
		merged = append(merged, y.symbols...)
		packages[k] = packageMergeItem{weight: x.weight + y.weight, symbols: merged}
	}
	return packages
}

// packageMergeLengths computes length-limited code lengths for n
// symbols with ascending sorted weights (rank order, not original
// alphabet order). Returns one length per rank, each in [1, limit].
//
// This is the reverse package-merge algorithm of §4.6: freq must
// already be sorted ascending and contain only strictly positive
// weights. The n==1 case is the degenerate single-symbol code (§4.6,
// last paragraph): a lone nonzero-frequency symbol gets length 1
// rather than a zero-length code.
func packageMergeLengths(freq []uint64, limit int) []int {
	n := len(freq)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []int{1}
	}

	leaves := make([]packageMergeItem, n)
	for i, w := range freq {
		leaves[i] = packageMergeItem{weight: w, symbols: []int{i}}
	}

	list := leaves
	for depth := 1; depth < limit; depth++ {
		packages := pairUp(list)
		list = mergeAscending(packages, leaves)
	}

	codeLen := make([]int, n)
	take := 2 * (n - 1)
	if take > len(list) {
		take = len(list)
	}
	for k := 0; k < take; k++ {
		for _, s := range list[k].symbols {
			codeLen[s]++
		}
	}
	return codeLen
}

// ComputeCodeLengths derives code lengths for a full alphabet from raw
// frequencies (index = symbol, value = count; zero means unused),
// limiting every nonzero symbol's code length to limit bits.
func ComputeCodeLengths(freq []int, limit int) []int {
	lengths := make([]int, len(freq))
	symbols, freqs := AscendingByFrequency(freq)
	if len(symbols) == 0 {
		return lengths
	}
	ranked := packageMergeLengths(freqs, limit)
	for rank, symbol := range symbols {
		lengths[symbol] = ranked[rank]
	}
	return lengths
}
