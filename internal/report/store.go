package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/reportdev/reportd/internal/clean"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// schemaDDL provisions the two tables this service owns, one statement per
// entry since pgx executes over the extended protocol. Columns are stored
// one row each, cells comma-joined, per the boundary contract with the
// aggregation engine.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		report_id   uuid PRIMARY KEY,
		name        text NOT NULL,
		fingerprint text NOT NULL,
		row_count   integer NOT NULL DEFAULT 0,
		clean_csv   text NOT NULL,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS reports_fingerprint_idx ON reports (fingerprint)`,
	`CREATE TABLE IF NOT EXISTS report_columns (
		column_id uuid PRIMARY KEY,
		report_id uuid NOT NULL REFERENCES reports (report_id) ON DELETE CASCADE,
		position  integer NOT NULL,
		label     text NOT NULL,
		dtype     text NOT NULL,
		currency  text,
		rows      text NOT NULL,
		UNIQUE (report_id, label)
	)`,
}

// EnsureSchema creates the tables if they do not exist. Called once on
// startup.
func EnsureSchema(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func insertReport(ctx context.Context, db DBTX, r *Report, cleanCSV string) error {
	_, err := db.Exec(ctx,
		`INSERT INTO reports (report_id, name, fingerprint, row_count, clean_csv, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Name, r.Fingerprint, r.RowCount, cleanCSV, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func insertColumn(ctx context.Context, db DBTX, reportID uuid.UUID, position int, col clean.Column, rows string) (uuid.UUID, error) {
	id := uuid.New()
	currency := pgtype.Text{String: string(col.Currency), Valid: col.Currency != ""}
	_, err := db.Exec(ctx,
		`INSERT INTO report_columns (column_id, report_id, position, label, dtype, currency, rows)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, reportID, position, col.Label, string(col.Dtype), currency, rows,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert column %q: %w", col.Label, err)
	}
	return id, nil
}

func selectReport(ctx context.Context, db DBTX, id uuid.UUID) (*Report, error) {
	var r Report
	err := db.QueryRow(ctx,
		`SELECT report_id, name, fingerprint, row_count, created_at
		 FROM reports WHERE report_id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.Fingerprint, &r.RowCount, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownReport
	}
	if err != nil {
		return nil, fmt.Errorf("select report: %w", err)
	}
	return &r, nil
}

func selectReports(ctx context.Context, db DBTX, offset, limit int) ([]Report, error) {
	rows, err := db.Query(ctx,
		`SELECT report_id, name, fingerprint, row_count, created_at
		 FROM reports ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Name, &r.Fingerprint, &r.RowCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func selectColumnMeta(ctx context.Context, db DBTX, reportID uuid.UUID) ([]ColumnMeta, error) {
	rows, err := db.Query(ctx,
		`SELECT column_id, label, dtype, currency
		 FROM report_columns WHERE report_id = $1 ORDER BY position`,
		reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("select column meta: %w", err)
	}
	defer rows.Close()

	var out []ColumnMeta
	for rows.Next() {
		m, err := scanColumnMeta(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ColumnFilter narrows a column listing. Zero values mean "no filter".
type ColumnFilter struct {
	Labels []string
	Dtype  clean.ColumnDataType
	Offset int
	Limit  int
}

func selectColumns(ctx context.Context, db DBTX, reportID uuid.UUID, f ColumnFilter) ([]ColumnRecord, error) {
	query := `SELECT label, dtype, currency, rows FROM report_columns WHERE report_id = $1`
	args := []any{reportID}
	if len(f.Labels) > 0 {
		args = append(args, f.Labels)
		query += fmt.Sprintf(" AND label = ANY($%d)", len(args))
	}
	if f.Dtype != "" {
		args = append(args, string(f.Dtype))
		query += fmt.Sprintf(" AND dtype = $%d", len(args))
	}
	args = append(args, f.Offset, f.Limit)
	query += fmt.Sprintf(" ORDER BY position OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select columns: %w", err)
	}
	defer rows.Close()

	var out []ColumnRecord
	for rows.Next() {
		var (
			rec      ColumnRecord
			dtype    string
			currency pgtype.Text
			joined   string
		)
		if err := rows.Scan(&rec.Label, &dtype, &currency, &joined); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		rec.Dtype = clean.ColumnDataType(dtype)
		rec.Currency = clean.CurrencySymbol(currency.String)
		if joined != "" {
			rec.Rows = strings.Split(joined, ",")
		} else {
			rec.Rows = []string{}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func selectStoredColumn(ctx context.Context, db DBTX, reportID uuid.UUID, label string) (storedColumn, error) {
	var (
		col   storedColumn
		dtype string
	)
	err := db.QueryRow(ctx,
		`SELECT rows, dtype FROM report_columns WHERE report_id = $1 AND label = $2`,
		reportID, label,
	).Scan(&col.rows, &dtype)
	if errors.Is(err, pgx.ErrNoRows) {
		return storedColumn{}, ErrUnknownColumn
	}
	if err != nil {
		return storedColumn{}, fmt.Errorf("select column rows: %w", err)
	}
	col.dtype = clean.ColumnDataType(dtype)
	return col, nil
}

func fingerprintExists(ctx context.Context, db DBTX, fingerprint string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reports WHERE fingerprint = $1)`, fingerprint,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check fingerprint: %w", err)
	}
	return exists, nil
}

func deleteReport(ctx context.Context, db DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM reports WHERE report_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUnknownReport
	}
	return nil
}

func scanColumnMeta(rows pgx.Rows) (ColumnMeta, error) {
	var (
		m        ColumnMeta
		dtype    string
		currency pgtype.Text
	)
	if err := rows.Scan(&m.ID, &m.Label, &dtype, &currency); err != nil {
		return ColumnMeta{}, fmt.Errorf("scan column meta: %w", err)
	}
	m.Dtype = clean.ColumnDataType(dtype)
	m.Currency = clean.CurrencySymbol(currency.String)
	return m, nil
}
