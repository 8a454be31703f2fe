// Package report owns report and column persistence. A cleaned upload is
// stored as one reports row plus one report_columns row per column, with the
// column's cells serialized as a single comma-joined string next to its
// dtype and currency tags. The aggregation endpoint reads that stored
// representation back through this package.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/reportdev/reportd/internal/clean"
)

// Report is a persisted cleaning result.
type Report struct {
	ID          uuid.UUID    `json:"report_id"`
	Name        string       `json:"name"`
	Fingerprint string       `json:"fingerprint"`
	RowCount    int          `json:"row_count"`
	CreatedAt   time.Time    `json:"created_at"`
	Columns     []ColumnMeta `json:"columns,omitempty"`
}

// ColumnMeta describes a stored column without its row data.
type ColumnMeta struct {
	ID       uuid.UUID            `json:"column_id"`
	Label    string               `json:"label"`
	Dtype    clean.ColumnDataType `json:"dtype"`
	Currency clean.CurrencySymbol `json:"currency,omitempty"`
}

// ColumnRecord is a stored column with its cells split back out.
type ColumnRecord struct {
	Label    string               `json:"label"`
	Dtype    clean.ColumnDataType `json:"dtype"`
	Currency clean.CurrencySymbol `json:"currency,omitempty"`
	Rows     []string             `json:"rows"`
}

// storedColumn is the raw persisted form consumed by aggregation.
type storedColumn struct {
	rows  string
	dtype clean.ColumnDataType
}
