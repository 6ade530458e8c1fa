package lz77

func hashKey(data []byte, p int) uint32 {
	return uint32(data[p])<<16 | uint32(data[p+1])<<8 | uint32(data[p+2])
}

// searchLongestMatch scans history (ascending position order, most
// recent last) from most recent to oldest, applying the tail-first
// quick reject once a candidate length exceeds MinMatch (§4.4.1).
// Every history entry shares data[p:p+3] with p by construction (the
// hash key is the literal 3-byte prefix, not a lossy hash of it), so
// the first candidate is always at least a MinMatch-length match.
func searchLongestMatch(data []byte, p int, history []int32) (length, distance int) {
	maxLen := MaxMatch
	if remaining := len(data) - p; remaining < maxLen {
		maxLen = remaining
	}

	best := 0
	bestCandidate := -1
	iterations := 0

	for i := len(history) - 1; i >= 0; i-- {
		if iterations >= maxChainIterations {
			break
		}
		iterations++

		c := int(history[i])

		if best > MinMatch {
			if data[c+best-1] != data[p+best-1] {
				continue
			}
		}

		extendFrom := best
		if extendFrom > MinMatch {
			extendFrom = MinMatch
		}
		l := extendFrom
		for l < maxLen && data[c+l] == data[p+l] {
			l++
		}

		if l > best {
			best = l
			bestCandidate = c
		}
		if best >= MaxMatch {
			break
		}
	}

	if bestCandidate < 0 {
		return 0, 0
	}
	return best, p - bestCandidate
}
