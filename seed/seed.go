// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
)

// Window bounds the random timestamps ahead of now.
const Window = 30 * 24 * time.Hour

// AuthorRecipe describes an author to create.
type AuthorRecipe struct {
	Name        string
	CreatedDate time.Time
	UpdatedDate time.Time
}

// Make persists the author.
func (r AuthorRecipe) Make(ctx context.Context, st *store.Store) (models.Author, error) {
	a := models.Author{Name: r.Name, CreatedDate: r.CreatedDate, UpdatedDate: r.UpdatedDate}
	if err := st.CreateAuthor(ctx, &a); err != nil {
		return models.Author{}, err
	}
	return a, nil
}

// QuestionRecipe describes a question and the author it belongs to.
type QuestionRecipe struct {
	Author       AuthorRecipe
	QuestionText string
	PubDate      time.Time
	CreatedDate  time.Time
	UpdatedDate  time.Time
}

// Make persists the author first, then the question.
func (r QuestionRecipe) Make(ctx context.Context, st *store.Store) (models.Question, error) {
	a, err := r.Author.Make(ctx, st)
	if err != nil {
		return models.Question{}, err
	}

	q := models.Question{
		QuestionText: r.QuestionText,
		PubDate:      r.PubDate,
		RefAuthorID:  a.ID,
		AuthorName:   a.Name,
		CreatedDate:  r.CreatedDate,
		UpdatedDate:  r.UpdatedDate,
	}
	if err := st.CreateQuestion(ctx, &q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// ChoiceRecipe describes a choice and the question chain above it.
type ChoiceRecipe struct {
	Question    QuestionRecipe
	ChoiceText  string
	Votes       int
	CreatedDate time.Time
	UpdatedDate time.Time
}

// Make persists the whole chain: author, question, then the choice.
func (r ChoiceRecipe) Make(ctx context.Context, st *store.Store) (models.Choice, error) {
	q, err := r.Question.Make(ctx, st)
	if err != nil {
		return models.Choice{}, err
	}

	c := models.Choice{
		QuestionID:  q.ID,
		ChoiceText:  r.ChoiceText,
		Votes:       r.Votes,
		CreatedDate: r.CreatedDate,
		UpdatedDate: r.UpdatedDate,
	}
	if err := st.CreateChoice(ctx, &c); err != nil {
		return models.Choice{}, err
	}
	return c, nil
}

// Seeder fills recipes with random values.
type Seeder struct {
	store *store.Store
	faker *gofakeit.Faker
}

func New(st *store.Store, faker *gofakeit.Faker) *Seeder {
	return &Seeder{store: st, faker: faker}
}

// future returns a random time between now and now+Window.
func (s *Seeder) future() time.Time {
	now := s.store.Clock()
	return s.faker.DateRange(now, now.Add(Window))
}

// dates returns a random created date and an updated date not before it.
func (s *Seeder) dates() (created, updated time.Time) {
	now := s.store.Clock()
	created = s.future()
	return created, s.faker.DateRange(created, now.Add(Window))
}

func (s *Seeder) Author() AuthorRecipe {
	created, updated := s.dates()
	return AuthorRecipe{Name: s.faker.Name(), CreatedDate: created, UpdatedDate: updated}
}

func (s *Seeder) Question(author AuthorRecipe) QuestionRecipe {
	created, updated := s.dates()
	return QuestionRecipe{
		Author:       author,
		QuestionText: s.faker.Question(),
		PubDate:      s.future(),
		CreatedDate:  created,
		UpdatedDate:  updated,
	}
}

func (s *Seeder) Choice(question QuestionRecipe) ChoiceRecipe {
	created, updated := s.dates()
	return ChoiceRecipe{
		Question:    question,
		ChoiceText:  s.faker.Word(),
		Votes:       s.faker.Number(0, 100),
		CreatedDate: created,
		UpdatedDate: updated,
	}
}

// Run creates n author → question → choice chains and stops at the first
// error. Chains made before the error stay in the database.
func (s *Seeder) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		recipe := s.Choice(s.Question(s.Author()))
		if _, err := recipe.Make(ctx, s.store); err != nil {
			return fmt.Errorf("failed to seed chain %d of %d: %w", i+1, n, err)
		}
	}
	slog.Info("fake data seeded", "chains", n)
	return nil
}
