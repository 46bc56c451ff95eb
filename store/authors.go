// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/danielhkuo/sample-admin/models"
)

// Tables with the author shape
const (
	tableAuthor      = "author"
	tableAuthorClone = "author_clone"
)

// AuthorFilter selects authors for a change list.
type AuthorFilter struct {
	// NamePrefix keeps names starting with this literal, case-sensitive.
	NamePrefix string
	Search     string
	// IDs, when non-nil, restricts the result to these ids.
	IDs []int64
	Page
}

func (f AuthorFilter) conds() []exp.Expression {
	var conds []exp.Expression
	if f.NamePrefix != "" {
		prefix := goqu.Func("substr", goqu.C("name"), 1, utf8.RuneCountInString(f.NamePrefix))
		conds = append(conds, prefix.Eq(f.NamePrefix))
	}
	conds = append(conds, search(f.Search, goqu.C("name"))...)
	if f.IDs != nil {
		conds = append(conds, inIDs(goqu.C("id"), f.IDs))
	}
	return conds
}

func (s *Store) listNamed(ctx context.Context, table string, f AuthorFilter) ([]models.Author, int, error) {
	ds := s.from(table).Where(f.conds()...)

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.query(ctx, f.Page.apply(ds.
		Select("id", "name", "created_date", "updated_date").
		Order(goqu.C("id").Desc())))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedDate, &a.UpdatedDate); err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		authors = append(authors, a)
	}
	return authors, total, rows.Err()
}

func (s *Store) getNamed(ctx context.Context, table string, id int64) (models.Author, error) {
	var a models.Author
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_date, updated_date
		FROM `+table+`
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.CreatedDate, &a.UpdatedDate)
	if err != nil {
		return models.Author{}, notFound(err)
	}
	return a, nil
}

func (s *Store) createNamed(ctx context.Context, q querier, table string, a *models.Author) error {
	now := s.now()
	if a.CreatedDate.IsZero() {
		a.CreatedDate = now
	}
	if a.UpdatedDate.IsZero() {
		a.UpdatedDate = now
	}
	a.CreatedDate, a.UpdatedDate = Timestamp(a.CreatedDate), Timestamp(a.UpdatedDate)

	err := q.QueryRowContext(ctx, `
		INSERT INTO `+table+` (name, created_date, updated_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`, a.Name, a.CreatedDate, a.UpdatedDate).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return nil
}

func (s *Store) updateNamed(ctx context.Context, q querier, table string, a *models.Author) error {
	a.UpdatedDate = s.now()
	res, err := q.ExecContext(ctx, `
		UPDATE `+table+`
		SET name = $1, updated_date = $2
		WHERE id = $3
	`, a.Name, a.UpdatedDate, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAuthors returns one page of matching authors, newest first, and the
// total number of matches.
func (s *Store) ListAuthors(ctx context.Context, f AuthorFilter) ([]models.Author, int, error) {
	return s.listNamed(ctx, tableAuthor, f)
}

func (s *Store) GetAuthor(ctx context.Context, id int64) (models.Author, error) {
	return s.getNamed(ctx, tableAuthor, id)
}

// CreateAuthor inserts a and sets its ID. Zero timestamps are set to now.
func (s *Store) CreateAuthor(ctx context.Context, a *models.Author) error {
	return s.createNamed(ctx, s.db, tableAuthor, a)
}

// UpdateAuthor saves the name and bumps updated_date.
func (s *Store) UpdateAuthor(ctx context.Context, a *models.Author) error {
	return s.updateNamed(ctx, s.db, tableAuthor, a)
}

// DeleteAuthors deletes the given authors; their questions and choices
// cascade.
func (s *Store) DeleteAuthors(ctx context.Context, ids []int64) (int64, error) {
	return s.deleteIDs(ctx, tableAuthor, ids)
}

func (s *Store) CountAuthors(ctx context.Context) (int, error) {
	return s.count(ctx, s.from(tableAuthor))
}

// AuthorChartData counts all authors per day of updated_date, newest day
// first. Days are UTC.
func (s *Store) AuthorChartData(ctx context.Context) ([]models.ChartPoint, error) {
	day := goqu.L("date(updated_date)")
	if s.dialectName == dialectPostgres {
		day = goqu.L("to_char(date_trunc('day', updated_date AT TIME ZONE 'UTC'), 'YYYY-MM-DD')")
	}

	rows, err := s.query(ctx, s.from(tableAuthor).
		Select(day.As("day"), goqu.COUNT(goqu.Star())).
		GroupBy(goqu.C("day")).
		Order(goqu.C("day").Desc()))
	if err != nil {
		return nil, fmt.Errorf("failed to query author dates: %w", err)
	}
	defer rows.Close()

	points := []models.ChartPoint{}
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("failed to scan author day: %w", err)
		}
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return nil, fmt.Errorf("failed to parse author day %q: %w", day, err)
		}
		points = append(points, models.ChartPoint{Date: date, Y: n})
	}
	return points, rows.Err()
}

// Author clones

func toClone(a models.Author) models.AuthorClone {
	return models.AuthorClone{ID: a.ID, Name: a.Name, CreatedDate: a.CreatedDate, UpdatedDate: a.UpdatedDate}
}

func fromClone(c models.AuthorClone) models.Author {
	return models.Author{ID: c.ID, Name: c.Name, CreatedDate: c.CreatedDate, UpdatedDate: c.UpdatedDate}
}

func (s *Store) ListAuthorClones(ctx context.Context, f AuthorFilter) ([]models.AuthorClone, int, error) {
	authors, total, err := s.listNamed(ctx, tableAuthorClone, f)
	if err != nil {
		return nil, 0, err
	}
	clones := make([]models.AuthorClone, len(authors))
	for i, a := range authors {
		clones[i] = toClone(a)
	}
	return clones, total, nil
}

func (s *Store) GetAuthorClone(ctx context.Context, id int64) (models.AuthorClone, error) {
	a, err := s.getNamed(ctx, tableAuthorClone, id)
	if err != nil {
		return models.AuthorClone{}, err
	}
	return toClone(a), nil
}

func (s *Store) CreateAuthorClone(ctx context.Context, c *models.AuthorClone) error {
	a := fromClone(*c)
	if err := s.createNamed(ctx, s.db, tableAuthorClone, &a); err != nil {
		return err
	}
	*c = toClone(a)
	return nil
}

func (s *Store) UpdateAuthorClone(ctx context.Context, c *models.AuthorClone) error {
	a := fromClone(*c)
	if err := s.updateNamed(ctx, s.db, tableAuthorClone, &a); err != nil {
		return err
	}
	*c = toClone(a)
	return nil
}

func (s *Store) DeleteAuthorClones(ctx context.Context, ids []int64) (int64, error) {
	return s.deleteIDs(ctx, tableAuthorClone, ids)
}
