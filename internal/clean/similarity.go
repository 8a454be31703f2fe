package clean

// similarity.go implements the normalized similarity ratio used by spelling
// correction: 2*M/T, where M is the total length of the longest matching
// blocks between the two strings and T the combined length. The ratio is 1.0
// for identical strings and 0.0 for strings with no characters in common.
// Matching blocks are found by repeatedly taking the longest common
// contiguous run and recursing on the pieces to its left and right, so
// transpositions and partial overlaps still score high, unlike a plain
// edit-distance ratio ("aple" vs "apple" scores 8/9, not 4/5).

// similarity returns the ratio in [0, 1] between a and b. Two empty strings
// are identical by definition.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchTotal(ra, rb, 0, len(ra), 0, len(rb))
	return 2.0 * float64(matched) / float64(total)
}

// matchTotal sums the matching block sizes within a[alo:ahi] and b[blo:bhi].
func matchTotal(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchTotal(a, b, alo, i, blo, j) +
		matchTotal(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest common contiguous run within the given
// bounds. Ties resolve to the earliest position in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] holds the length of the run ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
