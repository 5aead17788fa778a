// Package warehouse is the query-executor boundary. It only ever receives
// validated SQL: the safety validator gates every statement before it can
// reach a connection here.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"    // Postgres wire protocol (Redshift)
	_ "github.com/marcboeker/go-duckdb"   // local snapshot files

	"github.com/kyleking/dwh-analyst/internal/config"
	"github.com/kyleking/dwh-analyst/internal/errors"
	"github.com/kyleking/dwh-analyst/internal/types"
)

// Executor runs one validated statement and returns its rows. DemoDataProvider
// satisfies this too, so the pipeline dispatches either without branching.
type Executor interface {
	Run(ctx context.Context, validatedSQL string) (*types.ExecutionResult, error)
	Ping(ctx context.Context) error
	Close() error
}

// SQLExecutor executes against the live warehouse over database/sql.
type SQLExecutor struct {
	db      *sql.DB
	timeout time.Duration
}

// Open connects to the warehouse described by the configuration. The session
// is opened read-only where the driver supports it; the validator remains the
// primary guard.
func Open(cfg config.WarehouseConfig, timeout time.Duration) (*SQLExecutor, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeServiceUnavailable, "failed to open warehouse connection")
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &SQLExecutor{db: db, timeout: timeout}, nil
}

// NewSQLExecutor wraps an existing handle; used by tests.
func NewSQLExecutor(db *sql.DB, timeout time.Duration) *SQLExecutor {
	return &SQLExecutor{db: db, timeout: timeout}
}

func dataSource(cfg config.WarehouseConfig) (driver, dsn string, err error) {
	switch strings.ToLower(cfg.Driver) {
	case "duckdb":
		if cfg.Path == "" {
			return "", "", errors.New(errors.ErrTypeConfigIncomplete, "warehouse path is required for duckdb")
		}

		return "duckdb", cfg.Path + "?access_mode=read_only", nil
	case "pgx", "":
		if cfg.Host == "" || cfg.Database == "" {
			return "", "", errors.New(errors.ErrTypeConfigIncomplete, "warehouse host and database are required")
		}

		dsn := fmt.Sprintf(
			"host=%s port=%d dbname=%s user=%s password=%s default_transaction_read_only=on",
			cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password,
		)

		return "pgx", dsn, nil
	default:
		return "", "", errors.Newf(errors.ErrTypeConfigIncomplete, "unknown warehouse driver: %s", cfg.Driver)
	}
}

// Ping verifies the connection is usable.
func (e *SQLExecutor) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, errors.ErrTypeServiceUnavailable, "warehouse unreachable")
	}

	return nil
}

// Run executes one validated statement and materializes the rows with their
// column order preserved.
func (e *SQLExecutor) Run(ctx context.Context, validatedSQL string) (*types.ExecutionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, validatedSQL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(err, errors.ErrTypeServiceUnavailable, "warehouse query timed out")
		}

		return nil, errors.Wrap(err, errors.ErrTypeExecution, "warehouse rejected the query")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeExecution, "failed to read result columns")
	}

	var result []types.Row

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))

		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeExecution, "failed to scan result row")
		}

		row := make(types.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeExecution, "error reading result rows")
	}

	return &types.ExecutionResult{
		Columns:  columns,
		Rows:     result,
		RowCount: len(result),
		Source:   types.SourceLive,
	}, nil
}

// Close releases the connection pool.
func (e *SQLExecutor) Close() error {
	return e.db.Close()
}

// normalizeValue converts driver byte slices to strings so rendering and CSV
// export see locale-independent text.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	return v
}
