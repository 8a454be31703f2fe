package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reportdev/reportd/internal/aggregate"
	"github.com/reportdev/reportd/internal/clean"
	"github.com/reportdev/reportd/internal/config"
	"github.com/reportdev/reportd/internal/logging"
	"github.com/zeebo/xxh3"
)

// Service wires the cleaning engine to Postgres. One cleaning operation
// processes one uploaded file end-to-end before returning; the limiter caps
// how many run at once.
type Service struct {
	pool         *pgxpool.Pool
	limiter      *uploadLimiter
	maxFileSize  int64
	cleanTimeout time.Duration
}

// NewService creates the report service from the loaded configuration.
func NewService(pool *pgxpool.Pool, cfg *config.Config) *Service {
	return &Service{
		pool:         pool,
		limiter:      newUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		maxFileSize:  cfg.Upload.MaxFileSize,
		cleanTimeout: cfg.Upload.CleanTimeout,
	}
}

// EnsureSchema provisions the service's tables.
func (s *Service) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, s.pool)
}

// WaitForUploads blocks until in-flight cleaning passes finish, for
// graceful shutdown.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.waitForDrain(ctx)
}

// ActiveUploads reports how many cleaning passes are currently running.
func (s *Service) ActiveUploads() int {
	return s.limiter.activeCount()
}

// CreateReport ingests an uploaded CSV: decode, clean under the chosen fill
// strategy, and persist the report with one row per column in a single
// transaction. Re-uploads of a byte-identical file are rejected with
// ErrDuplicateUpload unless allowDuplicate is set.
func (s *Service) CreateReport(ctx context.Context, name string, file []byte, strategy clean.FillStrategy, allowDuplicate bool) (*Report, error) {
	if len(file) == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxFileSize > 0 && int64(len(file)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(file))
	}

	if err := s.limiter.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.release()

	fingerprint := Fingerprint(file)
	if !allowDuplicate {
		exists, err := fingerprintExists(ctx, s.pool, fingerprint)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateUpload
		}
	}

	cleanCtx := ctx
	if s.cleanTimeout > 0 {
		var cancel context.CancelFunc
		cleanCtx, cancel = context.WithTimeout(ctx, s.cleanTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := clean.Clean(cleanCtx, decodeUpload(file), strategy)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("cleaned upload",
		"name", name,
		"columns", len(res.Labels),
		"rows", res.RowCount,
		"strategy", string(strategy),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	r := &Report{
		ID:          uuid.New(),
		Name:        name,
		Fingerprint: fingerprint,
		RowCount:    res.RowCount,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertReport(ctx, tx, r, res.CSV); err != nil {
		return nil, err
	}
	cols := res.Columns()
	for i, col := range cols {
		id, err := insertColumn(ctx, tx, r.ID, i, col, res.Rows[i])
		if err != nil {
			return nil, err
		}
		r.Columns = append(r.Columns, ColumnMeta{
			ID:       id,
			Label:    col.Label,
			Dtype:    col.Dtype,
			Currency: col.Currency,
		})
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return r, nil
}

// GetReport returns a report and its column metadata.
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	r, err := selectReport(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	r.Columns, err = selectColumnMeta(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListReports returns reports ordered newest first.
func (s *Service) ListReports(ctx context.Context, offset, limit int) ([]Report, error) {
	return selectReports(ctx, s.pool, offset, limit)
}

// DeleteReport removes a report; its columns cascade.
func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return deleteReport(ctx, s.pool, id)
}

// ListColumns returns stored columns of a report, optionally filtered by
// label set and dtype.
func (s *Service) ListColumns(ctx context.Context, reportID uuid.UUID, f ColumnFilter) ([]ColumnRecord, error) {
	if _, err := selectReport(ctx, s.pool, reportID); err != nil {
		return nil, err
	}
	return selectColumns(ctx, s.pool, reportID, f)
}

// AggregateColumn fetches a stored column and applies the requested
// operation through the aggregation engine.
func (s *Service) AggregateColumn(ctx context.Context, reportID uuid.UUID, label string, op aggregate.Operation) (any, error) {
	col, err := selectStoredColumn(ctx, s.pool, reportID, label)
	if err != nil {
		return nil, err
	}
	return aggregate.Aggregate(col.rows, col.dtype, op)
}

// Fingerprint hashes the raw upload bytes for duplicate detection.
func Fingerprint(data []byte) string {
	return strconv.FormatUint(xxh3.Hash(data), 16)
}

// decodeUpload turns raw bytes into valid UTF-8 text, replacing any
// undecodable bytes so the cleaning pass never sees broken runes.
func decodeUpload(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}
	return buf.String()
}
