package clean

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Result is the output of one cleaning pass. All slices are index-aligned:
// Labels[i], Rows[i], Dtypes[i], and Currencies[i] describe the same column.
// Rows holds the comma-joined serialized cells of each column; CSV is the
// whole cleaned table rendered back to CSV text.
type Result struct {
	CSV        string
	Labels     []string
	Rows       []string
	Dtypes     []ColumnDataType
	Currencies []CurrencySymbol
	RowCount   int
}

// Columns reassembles the per-column view of the result.
func (r *Result) Columns() []Column {
	cols := make([]Column, len(r.Labels))
	for i := range r.Labels {
		cols[i] = Column{
			Label:    r.Labels[i],
			Dtype:    r.Dtypes[i],
			Currency: r.Currencies[i],
			Rows:     strings.Split(r.Rows[i], ","),
		}
	}
	return cols
}

// Clean runs the full pipeline over raw CSV text: sanitize, parse, fill
// nulls with the chosen strategy, then classify every column. Columns are
// mutually independent, so classification fans out across goroutines; the
// context cancels the quadratic spelling pass on oversized uploads.
func Clean(ctx context.Context, text string, strategy FillStrategy) (*Result, error) {
	table, err := parseTable(Sanitize(text))
	if err != nil {
		return nil, err
	}
	table.fill(strategy)

	cols := make([]Column, len(table.columns))
	g, gctx := errgroup.WithContext(ctx)
	for i, raw := range table.columns {
		i, raw := i, raw
		g.Go(func() error {
			c, err := classifyColumn(gctx, raw)
			if err != nil {
				return fmt.Errorf("classify column %q: %w", raw.name, err)
			}
			cols[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Labels:     make([]string, len(cols)),
		Rows:       make([]string, len(cols)),
		Dtypes:     make([]ColumnDataType, len(cols)),
		Currencies: make([]CurrencySymbol, len(cols)),
		RowCount:   table.rows,
	}
	for i, c := range cols {
		res.Labels[i] = c.Label
		res.Rows[i] = strings.Join(c.Rows, ",")
		res.Dtypes[i] = c.Dtype
		res.Currencies[i] = c.Currency
	}

	csvText, err := renderCSV(cols, table.rows)
	if err != nil {
		return nil, err
	}
	res.CSV = csvText
	return res, nil
}

// renderCSV writes the classified columns back out as CSV text, header
// first, row-major.
func renderCSV(cols []Column, rows int) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	record := make([]string, len(cols))
	for r := 0; r < rows; r++ {
		for i, c := range cols {
			record[i] = c.Rows[r]
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
