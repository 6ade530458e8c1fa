package lz77

// Result is the output of Encode: the token stream plus the parallel
// literal/length and distance frequency histograms (§3.4) that feed
// Huffman code-length derivation.
type Result struct {
	Tokens   []Token
	LitFreq  [286]int
	DistFreq [30]int
}

type lazyHold struct {
	active   bool
	pos      int
	length   int
	distance int
}

// Encode runs the hash-chained LZ77 match search with lazy matching
// over data (§4.4). lazy <= 0 disables lazy matching (greedy mode).
func Encode(data []byte, lazy int) Result {
	var res Result
	res.LitFreq[256] = 1 // end-of-block symbol always present (§3.4)

	n := len(data)
	chains := make(map[uint32][]int32)
	skip := 0
	var hold lazyHold

	// nextFree tracks the first input byte not yet represented by any
	// emitted token. A match's length can run past the point where the
	// main loop later stops due to fewer than MinMatch bytes remaining
	// (the skip counter has no more iterations left to count down in),
	// so the tail-literal pass below must start no earlier than this,
	// not just at the loop's final p.
	nextFree := 0

	emitLiteral := func(b byte) {
		res.Tokens = append(res.Tokens, Token{Kind: TokenLiteral, Literal: b})
		res.LitFreq[b]++
	}
	emitMatch := func(length, distance int) {
		lc, lev, leb := LengthCode(length)
		dc, dev, deb := DistCode(distance)
		res.Tokens = append(res.Tokens, Token{
			Kind: TokenMatch, Length: length, Distance: distance,
			LengthCode: lc, LengthExtraValue: lev, LengthExtraBits: leb,
			DistCode: dc, DistExtraValue: dev, DistExtraBits: deb,
		})
		res.LitFreq[lc]++
		res.DistFreq[dc]++
	}

	p := 0
	for n-p >= MinMatch {
		key := hashKey(data, p)
		chains[key] = append(chains[key], int32(p))

		if skip > 0 {
			skip--
			p++
			continue
		}

		chain := chains[key]
		history := chain[:len(chain)-1] // exclude the entry for p itself

		// Evict positions that fell out of the window; trim the stored
		// chain too so it doesn't grow without bound over a long input.
		evictBefore := p - WindowSize
		start := 0
		for start < len(history) && int(history[start]) <= evictBefore {
			start++
		}
		if start > 0 {
			history = history[start:]
			trimmed := make([]int32, len(history)+1)
			copy(trimmed, history)
			trimmed[len(history)] = int32(p)
			chains[key] = trimmed
		}

		if len(history) > 0 {
			mLen, mDist := searchLongestMatch(data, p, history)
			switch {
			case hold.active && hold.length < mLen:
				emitLiteral(data[hold.pos])
				emitMatch(mLen, mDist)
				skip = mLen - 1
				hold.active = false
				nextFree = p + mLen
			case hold.active:
				emitMatch(hold.length, hold.distance)
				skip = hold.length - 2
				hold.active = false
				nextFree = hold.pos + hold.length
			case mLen < lazy:
				hold = lazyHold{active: true, pos: p, length: mLen, distance: mDist}
			default:
				emitMatch(mLen, mDist)
				skip = mLen - 1
				nextFree = p + mLen
			}
		} else if hold.active {
			emitMatch(hold.length, hold.distance)
			skip = hold.length - 2
			hold.active = false
			nextFree = hold.pos + hold.length
		} else {
			emitLiteral(data[p])
			nextFree = p + 1
		}

		p++
	}

	if hold.active {
		emitMatch(hold.length, hold.distance)
		nextFree = hold.pos + hold.length
		hold.active = false
	}
	tailStart := p
	if nextFree > tailStart {
		tailStart = nextFree
	}
	for i := tailStart; i < n; i++ {
		emitLiteral(data[i])
	}

	res.Tokens = append(res.Tokens, Token{Kind: TokenEndOfBlock})
	return res
}
