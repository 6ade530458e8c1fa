package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalCodesKraft(t *testing.T) {
	lengths := []int{3, 3, 3, 3, 3, 2, 4, 4}
	codes := CanonicalCodes(lengths)
	require.Len(t, codes, len(lengths))

	tbl := BuildTable(lengths)
	require.Equal(t, 4, tbl.MaxLen)
	require.Equal(t, 2, tbl.MinLen)

	// Every slot must be populated, and each symbol must occupy exactly
	// 2^(maxLen-len) slots, the stride a length-l code spans (§4.3).
	seen := make(map[int]int)
	for idx, entry := range tbl.Entries {
		cl := int(entry >> 16)
		sym := int(entry & 0xFFFF)
		require.NotZero(t, cl, "slot %d unpopulated", idx)
		seen[sym]++
	}
	require.Len(t, seen, len(lengths))
	for sym, l := range lengths {
		require.Equal(t, 1<<uint(tbl.MaxLen-l), seen[sym], "symbol %d", sym)
	}
}

func TestComputeCodeLengthsKraftInequality(t *testing.T) {
	freq := []int{5, 1, 1, 1, 1, 1, 1, 1, 1, 2, 3, 7, 0, 0, 0}
	lengths := ComputeCodeLengths(freq, 7)

	var kraft float64
	maxLen := 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l > maxLen {
			maxLen = l
		}
		p := 1.0
		for i := 0; i < l; i++ {
			p /= 2
		}
		kraft += p
	}
	require.LessOrEqual(t, kraft, 1.0+1e-9)
	require.LessOrEqual(t, maxLen, 7)
}

func TestComputeCodeLengthsSingleSymbol(t *testing.T) {
	freq := []int{0, 0, 9, 0}
	lengths := ComputeCodeLengths(freq, 15)
	require.Equal(t, []int{0, 0, 1, 0}, lengths)
}

func TestComputeCodeLengthsLimitEnforced(t *testing.T) {
	// Fibonacci-like skewed frequencies would need > 7 bits unlimited;
	// the limiter must still cap every length at 7.
	freq := make([]int, 20)
	f := 1
	prev := 1
	for i := range freq {
		freq[i] = f
		f, prev = f+prev, f
	}
	lengths := ComputeCodeLengths(freq, 7)
	for _, l := range lengths {
		require.LessOrEqual(t, l, 7)
	}
}
