package lz77

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// reassemble replays the token stream against the original input the
// way a DEFLATE decoder would, verifying every match copies bytes that
// actually equal the corresponding slice of the source (property 6).
func reassemble(t *testing.T, tokens []Token) []byte {
	t.Helper()
	var out []byte
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLiteral:
			out = append(out, tok.Literal)
		case TokenMatch:
			require.GreaterOrEqual(t, tok.Distance, 1)
			require.LessOrEqual(t, tok.Distance, WindowSize)
			require.GreaterOrEqual(t, tok.Length, MinMatch)
			require.LessOrEqual(t, tok.Length, MaxMatch)
			start := len(out) - tok.Distance
			require.GreaterOrEqual(t, start, 0)
			for k := 0; k < tok.Length; k++ {
				out = append(out, out[start+k])
			}
		case TokenEndOfBlock:
			return out
		}
	}
	return out
}

func TestEncodeRoundTripsViaTokens(t *testing.T) {
	tests := [][]byte{
		[]byte{},
		[]byte("a"),
		[]byte("AAAAAAAA"),
		[]byte("Hello, World!"),
		bytes.Repeat([]byte("ab"), 200),
		bytes.Repeat([]byte{0x41}, 70000),
	}
	for _, data := range tests {
		for _, lazy := range []int{0, 8, 32} {
			res := Encode(data, lazy)
			got := reassemble(t, res.Tokens)
			require.Equal(t, data, got)
		}
	}
}

func TestEncodeRepetitiveRunCollapses(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 8)
	res := Encode(data, 0)

	matches := 0
	literals := 0
	for _, tok := range res.Tokens {
		switch tok.Kind {
		case TokenMatch:
			matches++
			require.Equal(t, 1, tok.Distance)
		case TokenLiteral:
			literals++
		}
	}
	require.Equal(t, 1, matches)
	require.Equal(t, 1, literals) // first byte has no prior occurrence to reference
}

func TestEncodeLongestMatchSaturatesAt258(t *testing.T) {
	data := bytes.Repeat([]byte{0x61}, 70000)
	res := Encode(data, 32)

	maxLen := 0
	for _, tok := range res.Tokens {
		if tok.Kind == TokenMatch && tok.Length > maxLen {
			maxLen = tok.Length
		}
	}
	require.Equal(t, MaxMatch, maxLen)
}

func TestEncodeEndOfBlockAlwaysLast(t *testing.T) {
	res := Encode([]byte("xyz"), 0)
	require.Equal(t, TokenEndOfBlock, res.Tokens[len(res.Tokens)-1].Kind)
	require.Equal(t, 1, res.LitFreq[256])
}
