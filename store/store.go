// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("record not found")

// goqu dialect names
const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// Store runs the admin queries against a *sql.DB.
// Fixed statements are written with $N placeholders, understood by both
// lib/pq and modernc sqlite. Filtered lists are built with goqu in the
// dialect of the connection's driver.
type Store struct {
	db          *sql.DB
	dialect     goqu.DialectWrapper
	dialectName string

	// Clock returns the current time. Stored timestamps are UTC with
	// microsecond precision.
	Clock func() time.Time
}

func New(db *sql.DB) *Store {
	name := dialectSQLite
	if _, ok := db.Driver().(*pq.Driver); ok {
		name = dialectPostgres
	}
	return &Store{db: db, dialect: goqu.Dialect(name), dialectName: name, Clock: time.Now}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) now() time.Time {
	return Timestamp(s.Clock())
}

// Timestamp normalizes t to the stored representation.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Page limits a list query. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if p.Limit <= 0 {
		return ds
	}
	return ds.Limit(uint(p.Limit)).Offset(uint(p.Offset))
}

// from starts a prepared select on table.
func (s *Store) from(table ...any) *goqu.SelectDataset {
	return s.dialect.From(table...).Prepared(true)
}

// search returns one condition per whitespace-separated term; a term
// matches when any column contains it, ignoring case.
func search(query string, columns ...exp.IdentifierExpression) []exp.Expression {
	var conds []exp.Expression
	for _, term := range strings.Fields(query) {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		ors := make([]exp.Expression, len(columns))
		for i, c := range columns {
			ors[i] = goqu.L(`LOWER(?) LIKE ? ESCAPE '\'`, c, pattern)
		}
		conds = append(conds, goqu.Or(ors...))
	}
	return conds
}

// inIDs matches column against ids. An empty list matches nothing.
func inIDs(column exp.IdentifierExpression, ids []int64) exp.Expression {
	if len(ids) == 0 {
		return goqu.L("1 = 0")
	}
	return column.In(ids)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// query runs a built select.
func (s *Store) query(ctx context.Context, ds *goqu.SelectDataset) (*sql.Rows, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	query, args, err := ds.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

func (s *Store) deleteIDs(ctx context.Context, table string, ids []int64) (int64, error) {
	query, args, err := s.dialect.Delete(table).Prepared(true).
		Where(inIDs(goqu.C("id"), ids)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return res.RowsAffected()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
