// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/danielhkuo/sample-admin/models"
)

// ChoiceFilter selects choices for a change list.
type ChoiceFilter struct {
	// Search matches choice text, author name and question text.
	Search     string
	AuthorID   int64
	QuestionID int64
	IDs        []int64
	Page
}

func (f ChoiceFilter) conds() []exp.Expression {
	conds := search(f.Search, goqu.I("c.choice_text"), goqu.I("a.name"), goqu.I("q.question_text"))
	if f.AuthorID != 0 {
		conds = append(conds, goqu.I("q.ref_author_id").Eq(f.AuthorID))
	}
	if f.QuestionID != 0 {
		conds = append(conds, goqu.I("c.question_id").Eq(f.QuestionID))
	}
	if f.IDs != nil {
		conds = append(conds, inIDs(goqu.I("c.id"), f.IDs))
	}
	return conds
}

const choiceFrom = `choice c
		JOIN question q ON q.id = c.question_id
		JOIN author a ON a.id = q.ref_author_id`

func (s *Store) choices() *goqu.SelectDataset {
	return s.from(goqu.T("choice").As("c")).
		Join(goqu.T("question").As("q"), goqu.On(goqu.I("q.id").Eq(goqu.I("c.question_id")))).
		Join(goqu.T("author").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("q.ref_author_id"))))
}

const choiceColumns = `c.id, c.question_id, c.choice_text, c.votes, c.created_date, c.updated_date,
		       q.question_text, a.id, a.name`

func scanChoice(sc interface{ Scan(...any) error }) (models.Choice, error) {
	var c models.Choice
	err := sc.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes, &c.CreatedDate, &c.UpdatedDate,
		&c.QuestionText, &c.AuthorID, &c.AuthorName)
	return c, err
}

// ListChoices returns one page of matching choices, most recently created
// first, with question text and author joined in.
func (s *Store) ListChoices(ctx context.Context, f ChoiceFilter) ([]models.Choice, int, error) {
	ds := s.choices().Where(f.conds()...)

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.query(ctx, f.Page.apply(ds.
		Select(goqu.L(choiceColumns)).
		Order(goqu.I("c.created_date").Desc(), goqu.I("c.id").Desc())))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		c, err := scanChoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, total, rows.Err()
}

func (s *Store) GetChoice(ctx context.Context, id int64) (models.Choice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+choiceColumns+`
		FROM `+choiceFrom+`
		WHERE c.id = $1
	`, id)
	c, err := scanChoice(row)
	if err != nil {
		return models.Choice{}, notFound(err)
	}
	return c, nil
}

// CreateChoice inserts c and sets its ID. Zero timestamps are set to now.
func (s *Store) CreateChoice(ctx context.Context, c *models.Choice) error {
	now := s.now()
	if c.CreatedDate.IsZero() {
		c.CreatedDate = now
	}
	if c.UpdatedDate.IsZero() {
		c.UpdatedDate = now
	}
	c.CreatedDate, c.UpdatedDate = Timestamp(c.CreatedDate), Timestamp(c.UpdatedDate)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO choice (question_id, choice_text, votes, created_date, updated_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.QuestionID, c.ChoiceText, c.Votes, c.CreatedDate, c.UpdatedDate).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to insert choice: %w", err)
	}
	return nil
}

func (s *Store) UpdateChoice(ctx context.Context, c *models.Choice) error {
	c.UpdatedDate = s.now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE choice
		SET question_id = $1, choice_text = $2, votes = $3, updated_date = $4
		WHERE id = $5
	`, c.QuestionID, c.ChoiceText, c.Votes, c.UpdatedDate, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update choice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteChoices(ctx context.Context, ids []int64) (int64, error) {
	return s.deleteIDs(ctx, "choice", ids)
}

func (s *Store) CountChoices(ctx context.Context) (int, error) {
	return s.count(ctx, s.from("choice"))
}
