// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/sample-admin/admin"
	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/templates"
)

// Author admin settings
const (
	// AuthorNamePrefix restricts every author page to names starting with it.
	AuthorNamePrefix = "j"
	authorsPerPage   = 100
	authorEmpty      = "Unknown"
	inlinePrefix     = "question_set"
	inlineExtra      = 3
)

var authorColumns = []admin.ListColumn[models.Author]{
	{Header: "Name", Link: true, Value: func(a models.Author) any { return a.Name }},
	{Header: "CreatedDate", Value: func(a models.Author) any { return a.CreatedDate }},
	{Header: "UpdatedDate", Value: func(a models.Author) any { return a.UpdatedDate }},
}

type AuthorHandler struct {
	modelAdmin
}

func NewAuthorHandler(st *store.Store, site *admin.Site, pages *templates.Renderer) *AuthorHandler {
	return &AuthorHandler{modelAdmin{store: st, site: site, pages: pages, model: AuthorModel}}
}

// visible keeps the selection to authors shown by the change list.
func (h *AuthorHandler) visible(ctx context.Context, ids []int64) ([]models.Author, error) {
	authors, _, err := h.store.ListAuthors(ctx, store.AuthorFilter{NamePrefix: AuthorNamePrefix, IDs: ids})
	return authors, err
}

// get loads an author, hiding those outside the change list.
func (h *AuthorHandler) get(ctx context.Context, id int64) (models.Author, error) {
	a, err := h.store.GetAuthor(ctx, id)
	if err != nil {
		return a, err
	}
	if !strings.HasPrefix(a.Name, AuthorNamePrefix) {
		return models.Author{}, store.ErrNotFound
	}
	return a, nil
}

func (h *AuthorHandler) actions() admin.Actions {
	return admin.Actions{
		h.deleteSelected(
			func(ctx context.Context, ids []int64) ([]string, error) {
				authors, err := h.visible(ctx, ids)
				return labels(authors), err
			},
			func(ctx context.Context, ids []int64) (int64, error) {
				authors, err := h.visible(ctx, ids)
				if err != nil {
					return 0, err
				}
				visible := make([]int64, len(authors))
				for i, a := range authors {
					visible[i] = a.ID
				}
				return h.store.DeleteAuthors(ctx, visible)
			},
		),
	}
}

// ChangeList handles GET /admin/sample_app/author/
func (h *AuthorHandler) ChangeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get(admin.SearchParam)

	authors, p, err := listPage(q, authorsPerPage, func(page store.Page) ([]models.Author, int, error) {
		return h.store.ListAuthors(r.Context(), store.AuthorFilter{NamePrefix: AuthorNamePrefix, Search: search, Page: page})
	})
	if err != nil {
		h.serverError(w, "failed to list authors", err)
		return
	}

	_, fullCount, err := h.store.ListAuthors(r.Context(), store.AuthorFilter{NamePrefix: AuthorNamePrefix, Page: store.Page{Limit: 1}})
	if err != nil {
		h.serverError(w, "failed to count authors", err)
		return
	}

	points, err := h.store.AuthorChartData(r.Context())
	if err != nil {
		h.serverError(w, "failed to aggregate authors", err)
		return
	}
	chart, err := json.Marshal(points)
	if err != nil {
		h.serverError(w, "failed to encode chart data", err)
		return
	}

	h.pages.Render(w, http.StatusOK, templates.ChangeList, admin.ChangeList{
		Context: h.context(w, r, "Select "+h.model.VerboseName+" to change"),
		Model:   h.model,
		AddURL:  h.site.AddURL(h.model),
		Headers: admin.Headers(authorColumns),
		Rows: admin.Rows(authorColumns, authors,
			func(a models.Author) int64 { return a.ID },
			func(id int64) string { return h.site.ChangeURL(h.model, id) },
			authorEmpty),
		SearchEnabled: true,
		Query:         search,
		Actions:       h.actions().Options(),
		Paginator:     p,
		FullCount:     fullCount,
		ChartData:     string(chart),
	})
}

// RunAction handles POST /admin/sample_app/author/
func (h *AuthorHandler) RunAction(w http.ResponseWriter, r *http.Request) {
	admin.Dispatch(w, r, h.actions())
}

// AddView handles GET and POST /admin/sample_app/author/add/
func (h *AuthorHandler) AddView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderForm(w, r, h.form(models.Author{}, nil, nil, nil))
		return
	}
	h.save(w, r, models.Author{}, nil)
}

// ChangeView handles GET and POST /admin/sample_app/author/{id}/change/
func (h *AuthorHandler) ChangeView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	a, err := h.get(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}
	questions, err := h.store.QuestionsByAuthor(r.Context(), id)
	if err != nil {
		h.serverError(w, "failed to load author questions", err)
		return
	}

	if r.Method == http.MethodPost {
		h.save(w, r, a, questions)
		return
	}

	rows := make([]models.InlineQuestionForm, len(questions))
	for i, q := range questions {
		rows[i] = models.InlineQuestionForm{ID: q.ID, QuestionText: q.QuestionText, PubDate: q.PubDate}
	}
	form := h.form(a, nil, rows, nil)
	if form.NbQuestion, err = h.nbQuestion(r.Context(), id); err != nil {
		h.serverError(w, "failed to count author questions", err)
		return
	}
	h.renderForm(w, r, form)
}

// nbQuestion serializes the question count of an author as a one element
// JSON array.
func (h *AuthorHandler) nbQuestion(ctx context.Context, id int64) (string, error) {
	n, err := h.store.CountQuestionsByAuthor(ctx, id)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal([]int{n})
	return string(b), err
}

// inlineRow is one posted inline question with its raw values.
type inlineRow struct {
	models.InlineQuestionForm
	rawPubDate string
	errs       models.FieldErrors
}

// parseInline reads the posted question rows. Ids that do not belong to the
// author are dropped, and untouched extra rows are skipped.
func parseInline(r *http.Request, questions []models.Question) []inlineRow {
	owned := make(map[int64]bool, len(questions))
	for _, q := range questions {
		owned[q.ID] = true
	}

	total, err := strconv.Atoi(r.PostForm.Get(inlinePrefix + "-TOTAL_FORMS"))
	if err != nil || total < 0 {
		total = 0
	}

	in := admin.Inline{Prefix: inlinePrefix}
	var rows []inlineRow
	for i := 0; i < total; i++ {
		row := inlineRow{
			InlineQuestionForm: models.InlineQuestionForm{
				ID:           admin.ParseID(r.PostForm.Get(in.FieldName(i, "id"))),
				QuestionText: strings.TrimSpace(r.PostForm.Get(in.FieldName(i, "question_text"))),
				Delete:       r.PostForm.Get(in.FieldName(i, "DELETE")) != "",
			},
			rawPubDate: r.PostForm.Get(in.FieldName(i, "pub_date")),
		}
		if row.ID != 0 && !owned[row.ID] {
			row.ID = 0
		}
		if row.ID == 0 && row.QuestionText == "" && strings.TrimSpace(row.rawPubDate) == "" {
			continue
		}

		pubDate, ok := admin.ParseDateTime(row.rawPubDate)
		row.PubDate = pubDate
		if row.ID != 0 && row.Delete {
			rows = append(rows, row)
			continue
		}
		row.errs = models.Validate(row.InlineQuestionForm)
		if !ok {
			if row.errs == nil {
				row.errs = models.FieldErrors{}
			}
			row.errs["PubDate"] = []string{"Enter a valid date/time."}
		}
		rows = append(rows, row)
	}
	return rows
}

// save validates the posted author and inline questions and stores them in
// one transaction.
func (h *AuthorHandler) save(w http.ResponseWriter, r *http.Request, a models.Author, questions []models.Question) {
	if !parseForm(w, r) {
		return
	}

	added := a.ID == 0
	a.Name = strings.TrimSpace(r.PostForm.Get("name"))
	errs := models.Validate(models.AuthorForm{Name: a.Name})
	rows := parseInline(r, questions)

	invalid := errs != nil
	forms := make([]models.InlineQuestionForm, len(rows))
	rowErrs := make([]models.FieldErrors, len(rows))
	raw := make([]string, len(rows))
	for i, row := range rows {
		forms[i] = row.InlineQuestionForm
		rowErrs[i] = row.errs
		raw[i] = row.rawPubDate
		invalid = invalid || row.errs != nil
	}

	if invalid {
		form := h.form(a, errs, forms, rowErrs)
		for i := range raw {
			form.Inline.Rows[i].Fields[1].Value = raw[i]
		}
		if !added {
			var err error
			if form.NbQuestion, err = h.nbQuestion(r.Context(), a.ID); err != nil {
				h.serverError(w, "failed to count author questions", err)
				return
			}
		}
		h.renderForm(w, r, form)
		return
	}

	if err := h.store.SaveAuthorWithQuestions(r.Context(), &a, forms); err != nil {
		h.serverError(w, "failed to save author", err)
		return
	}

	slog.Info("author saved", "author_id", a.ID, "user", middleware.UserFromContext(r.Context()))
	h.saved(w, r, a.ID, a.String(), added)
}

// form builds the author page: the "Author information" fieldset followed by
// the stacked question inline with extra blank rows.
func (h *AuthorHandler) form(a models.Author, errs models.FieldErrors, rows []models.InlineQuestionForm, rowErrs []models.FieldErrors) admin.ChangeForm {
	form := admin.ChangeForm{
		Add:      a.ID == 0,
		ObjectID: a.ID,
		Object:   a.String(),
		Fieldsets: []admin.Fieldset{{
			Name: "Author information",
			Fields: []admin.Field{
				{Name: "name", Label: "Name", Input: "text", Value: a.Name, Errors: fieldErrors(errs, "Name")},
				readonlyDate("createdDate", "CreatedDate", a.CreatedDate),
				readonlyDate("updatedDate", "UpdatedDate", a.UpdatedDate),
			},
		}},
		Inline: &admin.Inline{Prefix: inlinePrefix, Title: QuestionModel.VerboseNamePlural},
	}

	in := form.Inline
	addRow := func(q models.InlineQuestionForm, fe models.FieldErrors) {
		i := len(in.Rows)
		in.Rows = append(in.Rows, admin.InlineRow{
			Index:     i,
			ID:        q.ID,
			Title:     q.QuestionText,
			CanDelete: q.ID != 0,
			Delete:    q.Delete,
			Fields: []admin.Field{
				{Name: in.FieldName(i, "question_text"), Label: "Question text", Input: "text",
					Value: q.QuestionText, Errors: fieldErrors(fe, "QuestionText")},
				{Name: in.FieldName(i, "pub_date"), Label: "Pub date", Input: "datetime",
					Value: admin.FormatDateTimeInput(q.PubDate), Errors: fieldErrors(fe, "PubDate")},
			},
		})
		if q.ID != 0 {
			in.InitialForms++
		}
	}

	for i, q := range rows {
		var fe models.FieldErrors
		if rowErrs != nil {
			fe = rowErrs[i]
		}
		addRow(q, fe)
	}
	for i := 0; i < inlineExtra; i++ {
		addRow(models.InlineQuestionForm{}, nil)
	}
	return form
}

// DeleteView handles GET and POST /admin/sample_app/author/{id}/delete/
func (h *AuthorHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	a, err := h.get(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}

	var related []string
	if r.Method != http.MethodPost {
		questions, err := h.store.QuestionsByAuthor(r.Context(), id)
		if err != nil {
			h.serverError(w, "failed to load author questions", err)
			return
		}
		for _, q := range questions {
			related = append(related, QuestionModel.VerboseName+": "+q.String())
		}
		choices, _, err := h.store.ListChoices(r.Context(), store.ChoiceFilter{AuthorID: id})
		if err != nil {
			h.serverError(w, "failed to load author choices", err)
			return
		}
		for _, c := range choices {
			related = append(related, ChoiceModel.VerboseName+": "+c.String())
		}
	}

	h.deleteView(w, r, id, a.String(), related, h.store.DeleteAuthors)
}
