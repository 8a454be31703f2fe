package clean

// spelling.go snaps near-duplicate values in free-text columns to a single
// canonical spelling. A value is first compared to the column's mode; if it
// is not close enough, the full column is scanned for similar values and the
// most frequent of those wins. This is the expensive step of the cleaning
// pass, quadratic in column length, which is why classification fans out
// across columns.

// correct returns the canonical spelling for value within its column.
// Values with no similar neighbors come back unchanged.
func correct(value string, values []string) string {
	mode, ok := modeOf(values)
	if !ok {
		return value
	}
	if similarity(value, mode) > SimilarityThreshold {
		return mode
	}

	var similar []string
	for _, other := range values {
		if similarity(value, other) > SimilarityThreshold {
			similar = append(similar, other)
		}
	}
	if best, ok := modeOf(similar); ok {
		return best
	}
	return value
}

// modeOf returns the most frequent value; ties resolve to the value seen
// first. ok is false for an empty slice.
func modeOf(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, true
}
