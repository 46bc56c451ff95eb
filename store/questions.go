// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/danielhkuo/sample-admin/models"
)

// Publication states understood by QuestionFilter
const (
	Published   = "Published"
	Unpublished = "Unpublished"
)

// QuestionFilter selects questions for a change list.
type QuestionFilter struct {
	// Search matches the author name.
	Search string
	// Published is "", Published (pub_date < Now) or Unpublished
	// (pub_date >= Now).
	Published string
	Now       time.Time
	AuthorID  int64
	IDs       []int64
	Page
}

func (f QuestionFilter) conds() []exp.Expression {
	conds := search(f.Search, goqu.I("a.name"))
	switch f.Published {
	case Published:
		conds = append(conds, goqu.I("q.pub_date").Lt(Timestamp(f.Now)))
	case Unpublished:
		conds = append(conds, goqu.I("q.pub_date").Gte(Timestamp(f.Now)))
	}
	if f.AuthorID != 0 {
		conds = append(conds, goqu.I("q.ref_author_id").Eq(f.AuthorID))
	}
	if f.IDs != nil {
		conds = append(conds, inIDs(goqu.I("q.id"), f.IDs))
	}
	return conds
}

const questionFrom = "question q JOIN author a ON a.id = q.ref_author_id"

func (s *Store) questions() *goqu.SelectDataset {
	return s.from(goqu.T("question").As("q")).
		Join(goqu.T("author").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("q.ref_author_id"))))
}

const questionColumns = `q.id, q.question_text, q.pub_date, q.ref_author_id,
		       q.created_date, q.updated_date, a.name`

func scanQuestion(sc interface{ Scan(...any) error }) (models.Question, error) {
	var q models.Question
	err := sc.Scan(&q.ID, &q.QuestionText, &q.PubDate, &q.RefAuthorID,
		&q.CreatedDate, &q.UpdatedDate, &q.AuthorName)
	return q, err
}

// ListQuestions returns one page of matching questions with their author
// name, newest first, and the total number of matches.
func (s *Store) ListQuestions(ctx context.Context, f QuestionFilter) ([]models.Question, int, error) {
	ds := s.questions().Where(f.conds()...)

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.query(ctx, f.Page.apply(ds.
		Select(goqu.L(questionColumns)).
		Order(goqu.I("q.id").Desc())))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+questionColumns+`
		FROM `+questionFrom+`
		WHERE q.id = $1
	`, id)
	q, err := scanQuestion(row)
	if err != nil {
		return models.Question{}, notFound(err)
	}
	return q, nil
}

// QuestionsByAuthor returns the questions of one author, oldest first.
func (s *Store) QuestionsByAuthor(ctx context.Context, authorID int64) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+questionColumns+`
		FROM `+questionFrom+`
		WHERE q.ref_author_id = $1
		ORDER BY q.id`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) createQuestion(ctx context.Context, db querier, q *models.Question) error {
	now := s.now()
	if q.CreatedDate.IsZero() {
		q.CreatedDate = now
	}
	if q.UpdatedDate.IsZero() {
		q.UpdatedDate = now
	}
	q.PubDate = Timestamp(q.PubDate)
	q.CreatedDate, q.UpdatedDate = Timestamp(q.CreatedDate), Timestamp(q.UpdatedDate)

	err := db.QueryRowContext(ctx, `
		INSERT INTO question (question_text, pub_date, ref_author_id, created_date, updated_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, q.QuestionText, q.PubDate, q.RefAuthorID, q.CreatedDate, q.UpdatedDate).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

func (s *Store) updateQuestion(ctx context.Context, db querier, q *models.Question) error {
	q.PubDate = Timestamp(q.PubDate)
	q.UpdatedDate = s.now()
	res, err := db.ExecContext(ctx, `
		UPDATE question
		SET question_text = $1, pub_date = $2, ref_author_id = $3, updated_date = $4
		WHERE id = $5
	`, q.QuestionText, q.PubDate, q.RefAuthorID, q.UpdatedDate, q.ID)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// updateInlineQuestion saves a question row of its author's inline. A
// question of another author is not found.
func (s *Store) updateInlineQuestion(ctx context.Context, db querier, q *models.Question) error {
	q.PubDate = Timestamp(q.PubDate)
	q.UpdatedDate = s.now()
	res, err := db.ExecContext(ctx, `
		UPDATE question
		SET question_text = $1, pub_date = $2, updated_date = $3
		WHERE id = $4 AND ref_author_id = $5
	`, q.QuestionText, q.PubDate, q.UpdatedDate, q.ID, q.RefAuthorID)
	if err != nil {
		return fmt.Errorf("failed to update inline question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %d of author %d: %w", q.ID, q.RefAuthorID, ErrNotFound)
	}
	return nil
}

// CreateQuestion inserts q and sets its ID. Zero timestamps are set to now.
func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	return s.createQuestion(ctx, s.db, q)
}

func (s *Store) UpdateQuestion(ctx context.Context, q *models.Question) error {
	return s.updateQuestion(ctx, s.db, q)
}

func (s *Store) DeleteQuestions(ctx context.Context, ids []int64) (int64, error) {
	return s.deleteIDs(ctx, "question", ids)
}

// MarkPublished sets pub_date on every given question in one statement and
// returns the number of rows changed.
func (s *Store) MarkPublished(ctx context.Context, ids []int64, pubDate time.Time) (int64, error) {
	query, args, err := s.dialect.Update("question").Prepared(true).
		Set(goqu.Record{"pub_date": Timestamp(pubDate)}).
		Where(inIDs(goqu.C("id"), ids)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build publish update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark questions published: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	return s.count(ctx, s.from("question"))
}

// CountQuestionsByAuthor counts the questions referencing one author.
func (s *Store) CountQuestionsByAuthor(ctx context.Context, authorID int64) (int, error) {
	return s.count(ctx, s.from("question").Where(goqu.C("ref_author_id").Eq(authorID)))
}

// SaveAuthorWithQuestions saves an author and its inline question rows in one
// transaction. The author is created when its ID is zero. Rows with an ID are
// updated or, when marked, deleted; rows without an ID are inserted.
func (s *Store) SaveAuthorWithQuestions(ctx context.Context, a *models.Author, rows []models.InlineQuestionForm) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if a.ID == 0 {
		err = s.createNamed(ctx, tx, tableAuthor, a)
	} else {
		err = s.updateNamed(ctx, tx, tableAuthor, a)
	}
	if err != nil {
		return err
	}

	for _, row := range rows {
		switch {
		case row.ID != 0 && row.Delete:
			if _, err := tx.ExecContext(ctx, `DELETE FROM question WHERE id = $1 AND ref_author_id = $2`, row.ID, a.ID); err != nil {
				return fmt.Errorf("failed to delete inline question: %w", err)
			}
		case row.ID != 0:
			q := models.Question{ID: row.ID, QuestionText: row.QuestionText, PubDate: row.PubDate, RefAuthorID: a.ID}
			if err := s.updateInlineQuestion(ctx, tx, &q); err != nil {
				return err
			}
		case !row.Delete:
			q := models.Question{QuestionText: row.QuestionText, PubDate: row.PubDate, RefAuthorID: a.ID}
			if err := s.createQuestion(ctx, tx, &q); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
