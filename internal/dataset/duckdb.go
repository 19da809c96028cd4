// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/metrics"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// queryTimeout bounds a single basket load.
const queryTimeout = 60 * time.Second

// Baskets are stored in long form, one row per item:
//
//	basket_id VARCHAR, segment VARCHAR, item VARCHAR
//
// CSV files use the same three columns with a header row.
const basketsSchema = `CREATE TABLE IF NOT EXISTS %s (
	basket_id VARCHAR NOT NULL,
	segment   VARCHAR,
	item      VARCHAR NOT NULL
)`

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenDuckDB opens a DuckDB database. An empty path or ":memory:" opens an
// in-memory database; otherwise the parent directory is created.
func OpenDuckDB(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	// Extensions are not needed; never reach for the network to load them.
	connStr := path + "?autoinstall_known_extensions=false&autoload_known_extensions=false"
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database")
	}
}

// DuckDBSource loads baskets from a DuckDB table or a CSV file read through
// DuckDB.
type DuckDBSource struct {
	db   *sql.DB
	from string
	name string
}

// NewDuckDBSource reads baskets from table.
func NewDuckDBSource(db *sql.DB, table string) (*DuckDBSource, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &DuckDBSource{db: db, from: table, name: "duckdb"}, nil
}

// NewCSVSource reads baskets from the CSV file at path.
func NewCSVSource(db *sql.DB, path string) *DuckDBSource {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return &DuckDBSource{
		db:   db,
		from: "read_csv_auto(" + quoted + ", header = true)",
		name: "csv",
	}
}

// Name identifies the source in metrics and logs.
func (s *DuckDBSource) Name() string {
	return s.name
}

// GetBaskets implements recommend.DataProvider. Rows of one basket are
// merged; the segment is taken from the basket's first row.
func (s *DuckDBSource) GetBaskets(ctx context.Context) (baskets []recommend.Basket, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDatasetLoad(s.name, time.Since(start), err)
	}()

	query := fmt.Sprintf(`
		SELECT
			CAST(basket_id AS VARCHAR) AS basket_id,
			COALESCE(CAST(segment AS VARCHAR), '') AS segment,
			CAST(item AS VARCHAR) AS item
		FROM %s
		WHERE basket_id IS NOT NULL
		  AND item IS NOT NULL
		  AND TRIM(CAST(item AS VARCHAR)) <> ''
		ORDER BY basket_id, item
	`, s.from)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query baskets: %w", err)
	}
	defer rows.Close()

	var current *recommend.Basket
	for rows.Next() {
		var id, segment, item string
		if err := rows.Scan(&id, &segment, &item); err != nil {
			return nil, fmt.Errorf("scan basket row: %w", err)
		}
		if current == nil || current.ID != id {
			baskets = append(baskets, recommend.Basket{ID: id, Segment: segment})
			current = &baskets[len(baskets)-1]
		}
		current.Items = append(current.Items, strings.TrimSpace(item))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate baskets: %w", err)
	}

	logging.Debug().
		Str("source", s.name).
		Int("baskets", len(baskets)).
		Dur("duration", time.Since(start)).
		Msg("Loaded baskets")

	return baskets, nil
}

// ImportBaskets writes baskets into table, creating it if needed. The insert
// runs in one transaction.
func ImportBaskets(ctx context.Context, db *sql.DB, table string, baskets []recommend.Basket) (inserted int, err error) {
	if !identifierPattern.MatchString(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(basketsSchema, table)); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	if len(baskets) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (basket_id, segment, item) VALUES (?, ?, ?)", table))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Failed to close prepared statement")
		}
	}()

	for _, b := range baskets {
		for _, item := range b.Items {
			if _, err = stmt.ExecContext(ctx, b.ID, b.Segment, item); err != nil {
				return inserted, fmt.Errorf("insert basket %s: %w", b.ID, err)
			}
			inserted++
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

var _ recommend.DataProvider = (*DuckDBSource)(nil)
