// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
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

const choicesPerPage = 100

var choiceColumns = []admin.ListColumn[models.Choice]{
	{Header: "Question", Link: true, Value: func(c models.Choice) any { return c.QuestionText }},
	{Header: "Choice text", Value: func(c models.Choice) any { return c.ChoiceText }},
	{Header: "Votes", Value: func(c models.Choice) any { return c.Votes }},
	{Header: "CreatedDate", Value: func(c models.Choice) any { return c.CreatedDate }},
	{Header: "UpdatedDate", Value: func(c models.Choice) any { return c.UpdatedDate }},
}

type ChoiceHandler struct {
	modelAdmin
}

func NewChoiceHandler(st *store.Store, site *admin.Site, pages *templates.Renderer) *ChoiceHandler {
	return &ChoiceHandler{modelAdmin{store: st, site: site, pages: pages, model: ChoiceModel}}
}

func (h *ChoiceHandler) actions() admin.Actions {
	return admin.Actions{
		h.deleteSelected(
			func(ctx context.Context, ids []int64) ([]string, error) {
				choices, _, err := h.store.ListChoices(ctx, store.ChoiceFilter{IDs: ids})
				return labels(choices), err
			},
			h.store.DeleteChoices,
		),
	}
}

// filters returns the sidebar filters: authors of the question, then
// questions.
func (h *ChoiceHandler) filters(ctx context.Context) (byAuthor, byQuestion admin.ListFilter, err error) {
	authors, _, err := h.store.ListAuthors(ctx, store.AuthorFilter{})
	if err != nil {
		return byAuthor, byQuestion, err
	}
	questions, _, err := h.store.ListQuestions(ctx, store.QuestionFilter{})
	if err != nil {
		return byAuthor, byQuestion, err
	}

	byAuthor = admin.RelatedFilter("refAuthor", "question__refAuthor__id__exact", authors,
		func(a models.Author) int64 { return a.ID },
		func(a models.Author) string { return a.Name })
	byQuestion = admin.RelatedFilter("question", "question__id__exact", questions,
		func(q models.Question) int64 { return q.ID },
		func(q models.Question) string { return q.QuestionText })
	return byAuthor, byQuestion, nil
}

// ChangeList handles GET /admin/sample_app/choice/
func (h *ChoiceHandler) ChangeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	byAuthor, byQuestion, err := h.filters(r.Context())
	if err != nil {
		h.serverError(w, "failed to load choice filters", err)
		return
	}

	f := store.ChoiceFilter{
		Search:     q.Get(admin.SearchParam),
		AuthorID:   byAuthor.ID(q),
		QuestionID: byQuestion.ID(q),
	}
	choices, p, err := listPage(q, choicesPerPage, func(page store.Page) ([]models.Choice, int, error) {
		f.Page = page
		return h.store.ListChoices(r.Context(), f)
	})
	if err != nil {
		h.serverError(w, "failed to list choices", err)
		return
	}

	fullCount, err := h.store.CountChoices(r.Context())
	if err != nil {
		h.serverError(w, "failed to count choices", err)
		return
	}

	h.pages.Render(w, http.StatusOK, templates.ChangeList, admin.ChangeList{
		Context: h.context(w, r, "Select "+h.model.VerboseName+" to change"),
		Model:   h.model,
		AddURL:  h.site.AddURL(h.model),
		Headers: admin.Headers(choiceColumns),
		Rows: admin.Rows(choiceColumns, choices,
			func(c models.Choice) int64 { return c.ID },
			func(id int64) string { return h.site.ChangeURL(h.model, id) },
			h.site.EmptyValueDisplay),
		Filters:       []admin.FilterView{byAuthor.View(q), byQuestion.View(q)},
		SearchEnabled: true,
		Query:         f.Search,
		Actions:       h.actions().Options(),
		Paginator:     p,
		FullCount:     fullCount,
	})
}

// RunAction handles POST /admin/sample_app/choice/
func (h *ChoiceHandler) RunAction(w http.ResponseWriter, r *http.Request) {
	admin.Dispatch(w, r, h.actions())
}

// AddView handles GET and POST /admin/sample_app/choice/add/
func (h *ChoiceHandler) AddView(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.save(w, r, models.Choice{})
		return
	}
	c := models.Choice{QuestionID: admin.ParseID(r.URL.Query().Get("question"))}
	form, err := h.form(r.Context(), c, strconv.Itoa(c.Votes), nil)
	if err != nil {
		h.serverError(w, "failed to build choice form", err)
		return
	}
	h.renderForm(w, r, form)
}

// ChangeView handles GET and POST /admin/sample_app/choice/{id}/change/
func (h *ChoiceHandler) ChangeView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetChoice(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}

	if r.Method == http.MethodPost {
		h.save(w, r, c)
		return
	}
	form, err := h.form(r.Context(), c, strconv.Itoa(c.Votes), nil)
	if err != nil {
		h.serverError(w, "failed to build choice form", err)
		return
	}
	h.renderForm(w, r, form)
}

func (h *ChoiceHandler) save(w http.ResponseWriter, r *http.Request, c models.Choice) {
	if !parseForm(w, r) {
		return
	}

	added := c.ID == 0
	rawQuestion := strings.TrimSpace(r.PostForm.Get("question"))
	rawVotes := strings.TrimSpace(r.PostForm.Get("votes"))

	c.QuestionID = admin.ParseID(rawQuestion)
	c.ChoiceText = strings.TrimSpace(r.PostForm.Get("choice_text"))

	votes, votesErr := strconv.Atoi(rawVotes)
	if rawVotes == "" {
		votes, votesErr = 0, nil
	}
	c.Votes = votes

	errs := models.Validate(models.ChoiceForm{QuestionID: c.QuestionID, ChoiceText: c.ChoiceText, Votes: c.Votes})
	if errs == nil {
		errs = models.FieldErrors{}
	}
	if votesErr != nil {
		errs["Votes"] = []string{"Enter a whole number."}
	}
	switch {
	case rawQuestion == "":
		errs["QuestionID"] = []string{"This field is required."}
	case c.QuestionID == 0:
		errs["QuestionID"] = []string{invalidChoice}
	default:
		if _, err := h.store.GetQuestion(r.Context(), c.QuestionID); errors.Is(err, store.ErrNotFound) {
			errs["QuestionID"] = []string{invalidChoice}
		} else if err != nil {
			h.serverError(w, "failed to load question", err)
			return
		}
	}

	if len(errs) > 0 {
		form, err := h.form(r.Context(), c, rawVotes, errs)
		if err != nil {
			h.serverError(w, "failed to build choice form", err)
			return
		}
		h.renderForm(w, r, form)
		return
	}

	var err error
	if added {
		err = h.store.CreateChoice(r.Context(), &c)
	} else {
		err = h.store.UpdateChoice(r.Context(), &c)
	}
	if err != nil {
		h.serverError(w, "failed to save choice", err)
		return
	}

	slog.Info("choice saved", "choice_id", c.ID, "user", middleware.UserFromContext(r.Context()))
	h.saved(w, r, c.ID, c.String(), added)
}

// form builds the choice page with a select over every question.
func (h *ChoiceHandler) form(ctx context.Context, c models.Choice, votes string, errs models.FieldErrors) (admin.ChangeForm, error) {
	questions, _, err := h.store.ListQuestions(ctx, store.QuestionFilter{})
	if err != nil {
		return admin.ChangeForm{}, err
	}
	options := make([]admin.Option, len(questions))
	for i, q := range questions {
		options[i] = admin.Option{Value: strconv.FormatInt(q.ID, 10), Label: q.QuestionText}
	}

	question := ""
	if c.QuestionID != 0 {
		question = strconv.FormatInt(c.QuestionID, 10)
	}
	return admin.ChangeForm{
		Add:      c.ID == 0,
		ObjectID: c.ID,
		Object:   c.String(),
		Fieldsets: []admin.Fieldset{{Fields: []admin.Field{
			{Name: "question", Label: "Question", Input: "select", Value: question, Options: options,
				Errors: fieldErrors(errs, "QuestionID")},
			{Name: "choice_text", Label: "Choice text", Input: "text", Value: c.ChoiceText,
				Errors: fieldErrors(errs, "ChoiceText")},
			{Name: "votes", Label: "Votes", Input: "number", Value: votes,
				Errors: fieldErrors(errs, "Votes")},
		}}},
	}, nil
}

// DeleteView handles GET and POST /admin/sample_app/choice/{id}/delete/
func (h *ChoiceHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetChoice(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}
	h.deleteView(w, r, id, c.String(), nil, h.store.DeleteChoices)
}
