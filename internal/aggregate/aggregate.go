// Package aggregate reduces a persisted column's serialized values to a
// response value. Columns are stored as comma-joined strings plus a dtype
// tag; the aggregator parses the cells back into their declared type and
// applies an optional reduction, enforcing the type/operation contract.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reportdev/reportd/internal/clean"
)

// Operation is a reduction or selection applied to a column at read time.
// The zero value means "no operation": return the full typed slice.
type Operation string

const (
	OpNone   Operation = ""
	OpFirst  Operation = "first"
	OpLast   Operation = "last"
	OpMax    Operation = "max"
	OpMean   Operation = "mean"
	OpMedian Operation = "median"
	OpMin    Operation = "min"
	OpMode   Operation = "mode"
	OpSum    Operation = "sum"
)

// ParseOperation validates a client-supplied operation name.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpNone, OpFirst, OpLast, OpMax, OpMean, OpMedian, OpMin, OpMode, OpSum:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown column operation %q", s)
}

var (
	// ErrEmptyColumn is returned when the stored rows hold no values at
	// all. A caller-facing "no data" condition, not an internal fault.
	ErrEmptyColumn = errors.New("column has no rows")

	// ErrUnsupportedOperation is returned when the requested operation is
	// incompatible with the column's data type.
	ErrUnsupportedOperation = errors.New("operation not supported for column data type")
)

// Aggregate parses the comma-joined rows under dtype and applies op.
// first/last work for every dtype; the numeric reductions (max, mean,
// median, min, mode, sum) require a NUMBER column. The result is a
// JSON-compatible scalar or slice.
func Aggregate(rows string, dtype clean.ColumnDataType, op Operation) (any, error) {
	if isEmptyRows(rows) {
		return nil, ErrEmptyColumn
	}
	cells := strings.Split(rows, ",")

	switch dtype {
	case clean.Boolean:
		return selectOnly(parseBools(cells), op, dtype)
	case clean.String:
		return selectOnly(cells, op, dtype)
	case clean.Number:
		nums, err := parseNumbers(cells)
		if err != nil {
			return nil, err
		}
		return reduceNumbers(nums, op)
	}
	return nil, fmt.Errorf("unknown column data type %q", dtype)
}

// isEmptyRows treats both the empty string and the all-comma sentinel as an
// empty column.
func isEmptyRows(rows string) bool {
	return strings.Trim(rows, ",") == ""
}

// selectOnly handles the dtypes that admit no reductions: the full slice,
// first, or last.
func selectOnly[T any](cells []T, op Operation, dtype clean.ColumnDataType) (any, error) {
	switch op {
	case OpNone:
		return cells, nil
	case OpFirst:
		return cells[0], nil
	case OpLast:
		return cells[len(cells)-1], nil
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrUnsupportedOperation, op, dtype)
}

func reduceNumbers(nums []float64, op Operation) (any, error) {
	switch op {
	case OpNone:
		return nums, nil
	case OpFirst:
		return nums[0], nil
	case OpLast:
		return nums[len(nums)-1], nil
	case OpMax:
		max := nums[0]
		for _, f := range nums[1:] {
			if f > max {
				max = f
			}
		}
		return max, nil
	case OpMin:
		min := nums[0]
		for _, f := range nums[1:] {
			if f < min {
				min = f
			}
		}
		return min, nil
	case OpSum:
		return sum(nums), nil
	case OpMean:
		return sum(nums) / float64(len(nums)), nil
	case OpMedian:
		sorted := make([]float64, len(nums))
		copy(sorted, nums)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 != 0 {
			return sorted[n/2], nil
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	case OpMode:
		return modes(nums), nil
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrUnsupportedOperation, op, clean.Number)
}

func sum(nums []float64) float64 {
	var s float64
	for _, f := range nums {
		s += f
	}
	return s
}

// modes returns every value sharing the maximum frequency, in first
// occurrence order. Ties are not broken further.
func modes(nums []float64) []float64 {
	counts := make(map[float64]int, len(nums))
	order := make([]float64, 0, len(nums))
	for _, f := range nums {
		if counts[f] == 0 {
			order = append(order, f)
		}
		counts[f]++
	}
	maxFreq := 0
	for _, c := range counts {
		if c > maxFreq {
			maxFreq = c
		}
	}
	var out []float64
	for _, f := range order {
		if counts[f] == maxFreq {
			out = append(out, f)
		}
	}
	return out
}

func parseNumbers(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid number %q: %w", i, c, err)
		}
		out[i] = f
	}
	return out, nil
}

// parseBools preserves the truthy/falsy mapping used when a boolean column
// is written: cells hold "true"/"false", and on read anything other than an
// explicit "false" or an empty cell counts as true.
func parseBools(cells []string) []bool {
	out := make([]bool, len(cells))
	for i, c := range cells {
		out[i] = c != "" && c != "false"
	}
	return out
}
