package clean

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrParseFailure indicates structurally invalid CSV input. The cleaning
// pass is aborted; there is no partial result.
var ErrParseFailure = errors.New("malformed csv input")

// cellKind is the primitive type the parser infers for a column before
// semantic classification. It mirrors what a dataframe library would report:
// every cell is held as text, and the kind records what all non-null cells
// parse as.
type cellKind int

const (
	kindText cellKind = iota
	kindBool
	kindNumber
)

// rawColumn is one named column of a parsed table. A cell holding the empty
// string is a null.
type rawColumn struct {
	name  string
	kind  cellKind
	cells []string
}

// rawTable is the rectangular result of parsing a sanitized upload.
type rawTable struct {
	columns []rawColumn
	rows    int
}

// parseTable parses sanitized CSV text into named, kind-tagged columns.
// The first record is the header; header names are trimmed. Input is
// NFC-normalized first so visually identical values compare equal during
// classification. A ragged or otherwise unparsable body yields
// ErrParseFailure.
func parseTable(text string) (*rawTable, error) {
	r := csv.NewReader(strings.NewReader(norm.NFC.String(text)))

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", ErrParseFailure)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cols := make([]rawColumn, len(header))
	for i, name := range header {
		cols[i] = rawColumn{name: strings.TrimSpace(name)}
	}

	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
		}
		for i := range cols {
			cols[i].cells = append(cols[i].cells, record[i])
		}
		rows++
	}

	for i := range cols {
		cols[i].kind = inferKind(cols[i].cells)
	}
	return &rawTable{columns: cols, rows: rows}, nil
}

// inferKind reports the narrowest primitive kind that fits every non-null
// cell. Columns with no non-null cells stay text.
func inferKind(cells []string) cellKind {
	seen := false
	allBool, allNumber := true, true
	for _, c := range cells {
		v := strings.TrimSpace(c)
		if v == "" {
			continue
		}
		seen = true
		if allBool && !isBoolLiteral(v) {
			allBool = false
		}
		if allNumber {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allNumber = false
			}
		}
		if !allBool && !allNumber {
			return kindText
		}
	}
	if !seen {
		return kindText
	}
	if allBool {
		return kindBool
	}
	if allNumber {
		return kindNumber
	}
	return kindText
}

func isBoolLiteral(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false":
		return true
	}
	return false
}

// formatNumber renders a float the way cleaned cells are persisted: no
// exponent, no trailing zeros ("10", "2.5").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
