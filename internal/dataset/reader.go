// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// DuckDB driver - reads and joins the CSV exports in memory
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/olistrec/internal/logging"
)

// ErrMissingSource is wrapped when a required CSV file does not exist.
var ErrMissingSource = errors.New("dataset: source file not found")

// Source file names inside the data directory.
const (
	OrdersFile    = "olist_orders_dataset.csv"
	ItemsFile     = "olist_order_items_dataset.csv"
	CustomersFile = "olist_customers_dataset.csv"
	ProductsFile  = "olist_products_dataset.csv"
)

// sources maps each staging table to its file.
var sources = []struct {
	table string
	file  string
}{
	{"orders", OrdersFile},
	{"items", ItemsFile},
	{"customers", CustomersFile},
	{"products", ProductsFile},
}

// Config controls where and how the CSV files are read.
type Config struct {
	// DataDir holds the four CSV files.
	DataDir string

	// QueryTimeout bounds each DuckDB statement. Zero means 5 minutes.
	QueryTimeout time.Duration
}

// Row is one joined purchase line.
type Row struct {
	OrderID           string
	CustomerID        string
	CustomerUniqueID  string
	CustomerState     string
	ProductID         string
	Category          string
	PurchaseDate      time.Time // calendar date of PurchaseTimestamp
	PurchaseTimestamp time.Time // zero when unparseable
	Price             float64
}

// Reader stages the CSV files in an in-memory DuckDB database.
type Reader struct {
	db      *sql.DB
	dataDir string
	timeout time.Duration
}

// NewReader checks that every source file exists and opens an in-memory
// DuckDB connection.
func NewReader(cfg Config) (*Reader, error) {
	dir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	for _, src := range sources {
		path := filepath.Join(dir, src.file)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Reader{db: db, dataDir: dir, timeout: timeout}, nil
}

// Close releases the DuckDB connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// DataDir returns the absolute data directory.
func (r *Reader) DataDir() string {
	return r.dataDir
}

// stage copies every CSV file into a table of the same logical name. All
// columns are read as text so that type sniffing never rejects a file.
func (r *Reader) stage(ctx context.Context) error {
	for _, src := range sources {
		path := filepath.Join(r.dataDir, src.file)
		stmt := fmt.Sprintf(
			"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv(%s, header = true, all_varchar = true)",
			src.table, quoteLiteral(path))

		qctx, cancel := context.WithTimeout(ctx, r.timeout)
		_, err := r.db.ExecContext(qctx, stmt)
		cancel()
		if err != nil {
			return fmt.Errorf("stage %s: %w", src.file, err)
		}
	}
	return nil
}

// joinQuery joins the staged tables. rowid keeps file order. Empty cells
// load as NULL and come back as empty strings.
const joinQuery = `
SELECT
	COALESCE(o.order_id, ''),
	COALESCE(o.customer_id, ''),
	COALESCE(c.customer_unique_id, ''),
	COALESCE(c.customer_state, ''),
	COALESCE(i.product_id, ''),
	COALESCE(p.category, ''),
	TRY_CAST(o.order_purchase_timestamp AS TIMESTAMP),
	TRY_CAST(i.price AS DOUBLE)
FROM orders o
JOIN items i ON i.order_id = o.order_id
JOIN customers c ON c.customer_id = o.customer_id
LEFT JOIN (
	SELECT product_id, any_value(product_category_name) AS category
	FROM products
	GROUP BY product_id
) p ON p.product_id = i.product_id
ORDER BY o.rowid, i.rowid, c.rowid
`

// Load stages the files and returns the joined rows.
func (r *Reader) Load(ctx context.Context) ([]Row, error) {
	start := time.Now()
	if err := r.stage(ctx); err != nil {
		return nil, err
	}

	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(qctx, joinQuery)
	if err != nil {
		return nil, fmt.Errorf("join sources: %w", err)
	}
	defer rows.Close()

	var out []Row
	unparsed := 0
	for rows.Next() {
		var (
			row   Row
			ts    sql.NullTime
			price sql.NullFloat64
		)
		if err := rows.Scan(
			&row.OrderID,
			&row.CustomerID,
			&row.CustomerUniqueID,
			&row.CustomerState,
			&row.ProductID,
			&row.Category,
			&ts,
			&price,
		); err != nil {
			return nil, fmt.Errorf("scan joined row: %w", err)
		}
		if ts.Valid {
			row.PurchaseTimestamp = ts.Time.UTC()
			y, m, d := row.PurchaseTimestamp.Date()
			row.PurchaseDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		} else {
			unparsed++
		}
		if price.Valid {
			row.Price = price.Float64
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined rows: %w", err)
	}

	logging.Info().
		Str("data_dir", r.dataDir).
		Int("rows", len(out)).
		Int("unparsed_timestamps", unparsed).
		Dur("took", time.Since(start)).
		Msg("loaded dataset")
	return out, nil
}

// Load opens a Reader for cfg, loads every row and closes it.
//
//nolint:gocritic // config passed by value, read once
func Load(ctx context.Context, cfg Config) ([]Row, error) {
	r, err := NewReader(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("failed to close dataset reader")
		}
	}()
	return r.Load(ctx)
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
