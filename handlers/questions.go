// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/sample-admin/admin"
	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/templates"
)

const (
	questionsPerPage = 50
	questionEmpty    = "???"
)

// publishedOffset is subtracted from now by the publish actions.
const publishedOffset = 24 * time.Hour

var questionCSVColumns = []admin.Column[models.Question]{
	{Header: "ID", Value: func(q models.Question) any { return q.ID }},
	{Header: "question text", Value: func(q models.Question) any { return q.QuestionText }},
	{Header: "pub date", Value: func(q models.Question) any { return q.PubDate }},
	{Header: "refAuthor", Value: func(q models.Question) any { return q.AuthorName }},
	{Header: "createdDate", Value: func(q models.Question) any { return q.CreatedDate }},
	{Header: "updatedDate", Value: func(q models.Question) any { return q.UpdatedDate }},
}

// MakePublishedPage is the confirmation page of make_published_custom.
type MakePublishedPage struct {
	admin.Context
	Model      admin.Registration
	Questions  []models.Question
	IDs        []int64
	FormAction string
}

type QuestionHandler struct {
	modelAdmin
}

func NewQuestionHandler(st *store.Store, site *admin.Site, pages *templates.Renderer) *QuestionHandler {
	return &QuestionHandler{modelAdmin{store: st, site: site, pages: pages, model: QuestionModel}}
}

func (h *QuestionHandler) now() time.Time {
	return h.store.Clock()
}

func (h *QuestionHandler) columns(now time.Time) []admin.ListColumn[models.Question] {
	return []admin.ListColumn[models.Question]{
		{Header: "Question text", Link: true, Value: func(q models.Question) any { return q.QuestionText }},
		{Header: "My question text", Empty: questionEmpty, Value: func(q models.Question) any { return q.QuestionText }},
		{Header: "Choices", Value: func(q models.Question) any { return admin.ChoicesLink(h.site, ChoiceModel, q.ID) }},
		{Header: "RefAuthor", Link: true, Value: func(q models.Question) any { return q.AuthorName }},
		{Header: "Published?", Value: func(q models.Question) any { return admin.BooleanIcon(q.HasBeenPublished(now)) }},
		{Header: "Pub date", Value: func(q models.Question) any { return q.PubDate }},
		{Header: "CreatedDate", Value: func(q models.Question) any { return q.CreatedDate }},
		{Header: "UpdatedDate", Value: func(q models.Question) any { return q.UpdatedDate }},
	}
}

func (h *QuestionHandler) selection(ctx context.Context, ids []int64) ([]models.Question, error) {
	questions, _, err := h.store.ListQuestions(ctx, store.QuestionFilter{IDs: ids})
	return questions, err
}

func (h *QuestionHandler) actions() admin.Actions {
	return admin.Actions{
		h.deleteSelected(
			func(ctx context.Context, ids []int64) ([]string, error) {
				questions, err := h.selection(ctx, ids)
				return labels(questions), err
			},
			h.store.DeleteQuestions,
		),
		{Name: "make_published", Description: "Mark selected questions as published", Run: h.makePublished},
		{Name: "export_to_csv", Description: "Export to CSV", Run: h.exportToCSV},
		{Name: "make_published_custom", Description: "Make published custom", Run: h.makePublishedCustom},
	}
}

// authorFilter lists every author, not only the ones on the author change
// list.
func (h *QuestionHandler) authorFilter(ctx context.Context) (admin.ListFilter, error) {
	authors, _, err := h.store.ListAuthors(ctx, store.AuthorFilter{})
	if err != nil {
		return admin.ListFilter{}, err
	}
	return admin.RelatedFilter("refAuthor", "refAuthor__id__exact", authors,
		func(a models.Author) int64 { return a.ID },
		func(a models.Author) string { return a.Name }), nil
}

// ChangeList handles GET /admin/sample_app/question/
func (h *QuestionHandler) ChangeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := h.now()

	byAuthor, err := h.authorFilter(r.Context())
	if err != nil {
		h.serverError(w, "failed to list authors", err)
		return
	}

	f := store.QuestionFilter{
		Search:    q.Get(admin.SearchParam),
		Published: admin.QuestionPublishedFilter.Value(q),
		Now:       now,
		AuthorID:  byAuthor.ID(q),
	}
	questions, p, err := listPage(q, questionsPerPage, func(page store.Page) ([]models.Question, int, error) {
		f.Page = page
		return h.store.ListQuestions(r.Context(), f)
	})
	if err != nil {
		h.serverError(w, "failed to list questions", err)
		return
	}

	fullCount, err := h.store.CountQuestions(r.Context())
	if err != nil {
		h.serverError(w, "failed to count questions", err)
		return
	}

	cols := h.columns(now)
	h.pages.Render(w, http.StatusOK, templates.ChangeList, admin.ChangeList{
		Context: h.context(w, r, "Select "+h.model.VerboseName+" to change"),
		Model:   h.model,
		AddURL:  h.site.AddURL(h.model),
		Headers: admin.Headers(cols),
		Rows: admin.Rows(cols, questions,
			func(q models.Question) int64 { return q.ID },
			func(id int64) string { return h.site.ChangeURL(h.model, id) },
			h.site.EmptyValueDisplay),
		Filters:       []admin.FilterView{admin.QuestionPublishedFilter.View(q), byAuthor.View(q)},
		SearchEnabled: true,
		Query:         f.Search,
		Actions:       h.actions().Options(),
		Paginator:     p,
		FullCount:     fullCount,
	})
}

// RunAction handles POST /admin/sample_app/question/
func (h *QuestionHandler) RunAction(w http.ResponseWriter, r *http.Request) {
	admin.Dispatch(w, r, h.actions())
}

// publish sets pub_date to one day before now on the selection.
func (h *QuestionHandler) publish(ctx context.Context, ids []int64) (int64, error) {
	return h.store.MarkPublished(ctx, ids, h.now().Add(-publishedOffset))
}

func (h *QuestionHandler) makePublished(w http.ResponseWriter, r *http.Request, ids []int64) {
	n, err := h.publish(r.Context(), ids)
	if err != nil {
		h.serverError(w, "failed to mark questions published", err)
		return
	}
	slog.Info("questions published", "count", n, "user", middleware.UserFromContext(r.Context()))
	http.Redirect(w, r, r.URL.RequestURI(), http.StatusFound)
}

func (h *QuestionHandler) exportToCSV(w http.ResponseWriter, r *http.Request, ids []int64) {
	questions, err := h.selection(r.Context(), ids)
	if err != nil {
		h.serverError(w, "failed to load questions for export", err)
		return
	}
	admin.ExportCSV(w, h.model.VerboseName, questionCSVColumns, questions)
}

// makePublishedCustom renders a confirmation page first; the post carrying
// apply publishes the selection.
func (h *QuestionHandler) makePublishedCustom(w http.ResponseWriter, r *http.Request, ids []int64) {
	if r.PostForm.Has("apply") {
		if _, err := h.publish(r.Context(), ids); err != nil {
			h.serverError(w, "failed to mark questions published", err)
			return
		}
		questions, err := h.selection(r.Context(), ids)
		if err != nil {
			h.serverError(w, "failed to count published questions", err)
			return
		}
		middleware.AddMessage(w, r, middleware.LevelInfo,
			fmt.Sprintf("Changed to published on %d questions", len(questions)))
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusFound)
		return
	}

	questions, err := h.selection(r.Context(), ids)
	if err != nil {
		h.serverError(w, "failed to load selection", err)
		return
	}
	h.pages.Render(w, http.StatusOK, templates.MakePublishedCustom, MakePublishedPage{
		Context:    h.context(w, r, "Mark questions as published"),
		Model:      h.model,
		Questions:  questions,
		IDs:        ids,
		FormAction: r.URL.RequestURI(),
	})
}

// AddView handles GET and POST /admin/sample_app/question/add/
func (h *QuestionHandler) AddView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		q := models.Question{RefAuthorID: admin.ParseID(r.URL.Query().Get("refAuthor"))}
		h.renderForm(w, r, h.form(q, "", nil))
		return
	}
	h.save(w, r, models.Question{})
}

// ChangeView handles GET and POST /admin/sample_app/question/{id}/change/
func (h *QuestionHandler) ChangeView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	q, err := h.store.GetQuestion(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}

	if r.Method == http.MethodPost {
		h.save(w, r, q)
		return
	}
	h.renderForm(w, r, h.form(q, admin.FormatDateTimeInput(q.PubDate), nil))
}

func (h *QuestionHandler) save(w http.ResponseWriter, r *http.Request, q models.Question) {
	if !parseForm(w, r) {
		return
	}

	added := q.ID == 0
	rawPubDate := r.PostForm.Get("pub_date")
	rawAuthor := strings.TrimSpace(r.PostForm.Get("refAuthor"))

	q.QuestionText = strings.TrimSpace(r.PostForm.Get("question_text"))
	pubDate, dateOK := admin.ParseDateTime(rawPubDate)
	q.PubDate = pubDate
	q.RefAuthorID = admin.ParseID(rawAuthor)
	q.AuthorName = ""

	errs := models.Validate(models.QuestionForm{QuestionText: q.QuestionText, PubDate: q.PubDate, RefAuthorID: q.RefAuthorID})
	if errs == nil {
		errs = models.FieldErrors{}
	}
	if !dateOK {
		errs["PubDate"] = []string{"Enter a valid date/time."}
	}
	switch {
	case rawAuthor == "":
		errs["RefAuthorID"] = []string{"This field is required."}
	case q.RefAuthorID == 0:
		errs["RefAuthorID"] = []string{invalidChoice}
	default:
		a, err := h.store.GetAuthor(r.Context(), q.RefAuthorID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			errs["RefAuthorID"] = []string{invalidChoice}
		case err != nil:
			h.serverError(w, "failed to load author", err)
			return
		default:
			q.AuthorName = a.Name
		}
	}

	if len(errs) > 0 {
		form := h.form(q, rawPubDate, errs)
		form.Fieldsets[2].Fields[0].Value = rawAuthor
		h.renderForm(w, r, form)
		return
	}

	var err error
	if added {
		err = h.store.CreateQuestion(r.Context(), &q)
	} else {
		err = h.store.UpdateQuestion(r.Context(), &q)
	}
	if err != nil {
		h.serverError(w, "failed to save question", err)
		return
	}

	slog.Info("question saved", "question_id", q.ID, "user", middleware.UserFromContext(r.Context()))
	h.saved(w, r, q.ID, q.String(), added)
}

// form builds the question page. The author fieldset starts collapsed and
// uses a raw id input.
func (h *QuestionHandler) form(q models.Question, pubDate string, errs models.FieldErrors) admin.ChangeForm {
	author := ""
	if q.RefAuthorID != 0 {
		author = strconv.FormatInt(q.RefAuthorID, 10)
	}
	return admin.ChangeForm{
		Add:       q.ID == 0,
		ObjectID:  q.ID,
		Object:    q.String(),
		SaveOnTop: true,
		Fieldsets: []admin.Fieldset{
			{Name: "Question information", Fields: []admin.Field{
				{Name: "question_text", Label: "Question text", Input: "text", Value: q.QuestionText,
					Errors: fieldErrors(errs, "QuestionText")},
			}},
			{Name: "Date", Fields: []admin.Field{
				{Name: "pub_date", Label: "Pub date", Input: "datetime", Value: pubDate,
					Errors: fieldErrors(errs, "PubDate")},
			}},
			{Name: "The author", Collapse: true, Fields: []admin.Field{
				{Name: "refAuthor", Label: "RefAuthor", Input: "rawid", Value: author,
					Errors:      fieldErrors(errs, "RefAuthorID"),
					LookupURL:   h.site.ChangeListURL(AuthorModel) + "?_popup=1",
					RelatedName: q.AuthorName},
			}},
		},
	}
}

// DeleteView handles GET and POST /admin/sample_app/question/{id}/delete/
func (h *QuestionHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	q, err := h.store.GetQuestion(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}

	var related []string
	if r.Method != http.MethodPost {
		choices, _, err := h.store.ListChoices(r.Context(), store.ChoiceFilter{QuestionID: id})
		if err != nil {
			h.serverError(w, "failed to load question choices", err)
			return
		}
		for _, c := range choices {
			related = append(related, ChoiceModel.VerboseName+": "+c.String())
		}
	}

	h.deleteView(w, r, id, q.String(), related, h.store.DeleteQuestions)
}
