// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tags

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/sample-admin/store"
)

// Counters exposes the record counts rendered in the admin sidebar.
type Counters struct {
	store *store.Store
}

func New(s *store.Store) *Counters {
	return &Counters{store: s}
}

func (c *Counters) NumberOfAuthors(r *http.Request) int {
	return c.count(r, "author", c.store.CountAuthors)
}

func (c *Counters) NumberOfQuestions(r *http.Request) int {
	return c.count(r, "question", c.store.CountQuestions)
}

func (c *Counters) NumberOfChoices(r *http.Request) int {
	return c.count(r, "choice", c.store.CountChoices)
}

// count runs fn in the request context. A failing count renders as 0.
func (c *Counters) count(r *http.Request, model string, fn func(context.Context) (int, error)) int {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	n, err := fn(ctx)
	if err != nil {
		slog.Error("failed to count records", "model", model, "error", err)
		return 0
	}
	return n
}

// FuncMap returns the counters under their template names.
func (c *Counters) FuncMap() template.FuncMap {
	return template.FuncMap{
		"number_of_authors":   c.NumberOfAuthors,
		"number_of_questions": c.NumberOfQuestions,
		"number_of_choices":   c.NumberOfChoices,
	}
}
