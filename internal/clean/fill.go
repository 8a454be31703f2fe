package clean

import (
	"strconv"
	"strings"
)

// fill replaces null cells in every column according to the chosen strategy.
// Column lengths never change and no rows are dropped. Statistic strategies
// (min, max, mean) only apply to number columns; other kinds pass through
// untouched under them. zero/one fill the literal 0/1 on number columns and
// false/true on boolean columns.
func (t *rawTable) fill(strategy FillStrategy) {
	for i := range t.columns {
		fillColumn(&t.columns[i], strategy)
	}
}

func fillColumn(col *rawColumn, strategy FillStrategy) {
	switch strategy {
	case FillForward:
		last := ""
		for i, c := range col.cells {
			if isNull(c) {
				col.cells[i] = last
			} else {
				last = col.cells[i]
			}
		}

	case FillBackward:
		next := ""
		for i := len(col.cells) - 1; i >= 0; i-- {
			if isNull(col.cells[i]) {
				col.cells[i] = next
			} else {
				next = col.cells[i]
			}
		}

	case FillMin, FillMax, FillMean:
		if col.kind != kindNumber {
			return
		}
		stat, ok := columnStat(col.cells, strategy)
		if !ok {
			return
		}
		replaceNulls(col.cells, formatNumber(stat))

	case FillZero:
		switch col.kind {
		case kindNumber:
			replaceNulls(col.cells, "0")
		case kindBool:
			replaceNulls(col.cells, "false")
		}

	case FillOne:
		switch col.kind {
		case kindNumber:
			replaceNulls(col.cells, "1")
		case kindBool:
			replaceNulls(col.cells, "true")
		}
	}
}

// columnStat computes the min, max, or mean of the non-null cells.
// ok is false when the column has no non-null numeric cells.
func columnStat(cells []string, strategy FillStrategy) (float64, bool) {
	var sum, min, max float64
	n := 0
	for _, c := range cells {
		if isNull(c) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			continue
		}
		if n == 0 {
			min, max = f, f
		} else {
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
		}
		sum += f
		n++
	}
	if n == 0 {
		return 0, false
	}
	switch strategy {
	case FillMin:
		return min, true
	case FillMax:
		return max, true
	default:
		return sum / float64(n), true
	}
}

func isNull(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

func replaceNulls(cells []string, value string) {
	for i, c := range cells {
		if isNull(c) {
			cells[i] = value
		}
	}
}
