package rle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// decode reverses Encode's symbol stream back into a length array, the
// way a dynamic-block writer's HCLEN consumer would, to check the
// round-trip invariant independent of Encode's internal run-splitting
// choices.
func decode(symbols []Symbol) []int {
	var out []int
	prev := 0
	for _, s := range symbols {
		switch s.Kind {
		case SymbolLiteral:
			out = append(out, s.Value)
			prev = s.Value
		case SymbolRepeatPrev:
			run := s.ExtraValue + 3
			for k := 0; k < run; k++ {
				out = append(out, prev)
			}
		case SymbolZero3:
			run := s.ExtraValue + 3
			for k := 0; k < run; k++ {
				out = append(out, 0)
			}
		case SymbolZero11:
			run := s.ExtraValue + 11
			for k := 0; k < run; k++ {
				out = append(out, 0)
			}
		}
	}
	return out
}

func TestEncodeRoundTrips(t *testing.T) {
	tests := [][]int{
		{},
		{1},
		{0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		repeat(0, 200),
		{3, 3, 3, 3, 3},
		{3, 3, 3, 3, 3, 3, 3, 3, 3},
		{1, 2, 3, 3, 3, 3, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 0, 0},
	}
	for _, lengths := range tests {
		res := Encode(lengths)
		got := decode(res.Symbols)
		require.Equal(t, lengths, got)
	}
}

func TestEncodeNoIllegalShortTailSymbols(t *testing.T) {
	lengths := repeat(0, 140) // forces a 138-run plus a short tail
	res := Encode(lengths)
	for _, s := range res.Symbols {
		run := 0
		switch s.Kind {
		case SymbolZero3:
			run = s.ExtraValue + 3
		case SymbolZero11:
			run = s.ExtraValue + 11
		default:
			continue
		}
		require.GreaterOrEqual(t, run, 3)
	}
	require.Equal(t, lengths, decode(res.Symbols))
}

func TestEncodeFrequencyHistogramMatchesSymbols(t *testing.T) {
	lengths := []int{1, 2, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	res := Encode(lengths)
	var want [19]int
	for _, s := range res.Symbols {
		want[s.Code()]++
	}
	require.Equal(t, want, res.Freq)
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
