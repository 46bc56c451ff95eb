// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/danielhkuo/sample-admin/admin"
	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/templates"
)

const appLabel = "sample_app"

// invalidChoice is the error of a foreign key naming a missing record.
const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

// Registered models, in app list order
var (
	AuthorModel = admin.Registration{
		AppLabel: appLabel, AppName: "Sample_App", Slug: models.SlugAuthor,
		VerboseName: "The Author", VerboseNamePlural: "The Authors",
	}
	QuestionModel = admin.Registration{
		AppLabel: appLabel, AppName: "Sample_App", Slug: models.SlugQuestion,
		VerboseName: "The Question", VerboseNamePlural: "The Questions",
	}
	ChoiceModel = admin.Registration{
		AppLabel: appLabel, AppName: "Sample_App", Slug: models.SlugChoice,
		VerboseName: "The Choice", VerboseNamePlural: "The Choices",
	}
	AuthorCloneModel = admin.Registration{
		AppLabel: appLabel, AppName: "Sample_App", Slug: models.SlugAuthorClone,
		VerboseName: "The Author clone", VerboseNamePlural: "The Authors clone",
	}
	UserModel = admin.Registration{
		AppLabel: "auth", AppName: "Authentication and Authorization", Slug: models.SlugUser,
		VerboseName: "User", VerboseNamePlural: "Users", ReadOnly: true,
	}
)

// NewSite returns the admin site with every model registered.
func NewSite(sortModels bool) *admin.Site {
	site := admin.NewSite()
	site.SortModels = sortModels
	site.Register(AuthorModel)
	site.Register(QuestionModel)
	site.Register(ChoiceModel)
	site.Register(AuthorCloneModel)
	site.Register(UserModel)
	return site
}

// ModelAdmin serves the pages of one registered model. AddView, ChangeView
// and DeleteView answer both GET and POST.
type ModelAdmin interface {
	Model() admin.Registration
	ChangeList(w http.ResponseWriter, r *http.Request)
	RunAction(w http.ResponseWriter, r *http.Request)
	AddView(w http.ResponseWriter, r *http.Request)
	ChangeView(w http.ResponseWriter, r *http.Request)
	DeleteView(w http.ResponseWriter, r *http.Request)
}

// modelAdmin carries what every model admin needs.
type modelAdmin struct {
	store *store.Store
	site  *admin.Site
	pages *templates.Renderer
	model admin.Registration
}

func (m *modelAdmin) Model() admin.Registration {
	return m.model
}

func (m *modelAdmin) changeListURL() string {
	return m.site.ChangeListURL(m.model)
}

func (m *modelAdmin) context(w http.ResponseWriter, r *http.Request, title string) admin.Context {
	return m.site.EachContext(w, r, title)
}

// serverError logs err and answers 500.
func (m *modelAdmin) serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "model", m.model.Slug, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

// objectID reads the {id} path value. Non-numeric ids answer 404.
func (m *modelAdmin) objectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, m.model.VerboseName+" not found")
		return 0, false
	}
	return id, true
}

// missing redirects to the index with the warning shown for unknown or
// hidden objects.
func (m *modelAdmin) missing(w http.ResponseWriter, r *http.Request, id int64) {
	middleware.AddMessage(w, r, middleware.LevelWarning,
		fmt.Sprintf("%s with ID “%d” doesn't exist. Perhaps it was deleted?", m.model.VerboseName, id))
	http.Redirect(w, r, m.site.URLPrefix, http.StatusFound)
}

// lookupFailed handles the error of loading the object of a change or delete
// page. It returns true when a response was written.
func (m *modelAdmin) lookupFailed(w http.ResponseWriter, r *http.Request, id int64, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, store.ErrNotFound):
		m.missing(w, r, id)
	default:
		m.serverError(w, "failed to load object", err)
	}
	return true
}

// saved flashes the success message of an add or change and redirects
// according to the submit button used.
func (m *modelAdmin) saved(w http.ResponseWriter, r *http.Request, id int64, obj string, added bool) {
	verb := "changed"
	if added {
		verb = "added"
	}
	msg := fmt.Sprintf("%s “%s” was %s successfully.", m.model.VerboseName, obj, verb)

	target := m.changeListURL()
	switch {
	case r.PostForm.Has("_continue"):
		msg += " You may edit it again below."
		target = m.site.ChangeURL(m.model, id)
	case r.PostForm.Has("_addanother"):
		msg += fmt.Sprintf(" You may add another %s below.", m.model.VerboseName)
		target = m.site.AddURL(m.model)
	}

	middleware.AddMessage(w, r, middleware.LevelSuccess, msg)
	http.Redirect(w, r, target, http.StatusFound)
}

// parseForm parses a posted form, answering 400 on failure.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return false
	}
	return true
}

// renderForm renders an add or change page. Pages with errors answer 200 like
// the initial render.
func (m *modelAdmin) renderForm(w http.ResponseWriter, r *http.Request, form admin.ChangeForm) {
	title := "Change " + m.model.VerboseName
	if form.Add {
		title = "Add " + m.model.VerboseName
	}
	form.Context = m.context(w, r, title)
	form.Model = m.model
	form.FormAction = r.URL.RequestURI()
	if !form.Add {
		form.DeleteURL = m.site.DeleteURL(m.model, form.ObjectID)
	}
	m.pages.Render(w, http.StatusOK, templates.ChangeForm, form)
}

// deleteView serves the single object delete page: a confirmation on GET,
// the delete on POST.
func (m *modelAdmin) deleteView(w http.ResponseWriter, r *http.Request, id int64, obj string, related []string,
	del func(context.Context, []int64) (int64, error)) {
	if r.Method == http.MethodPost {
		if !parseForm(w, r) {
			return
		}
		if _, err := del(r.Context(), []int64{id}); err != nil {
			m.serverError(w, "failed to delete object", err)
			return
		}
		slog.Info("object deleted", "model", m.model.Slug, "id", id, "user", middleware.UserFromContext(r.Context()))
		middleware.AddMessage(w, r, middleware.LevelSuccess,
			fmt.Sprintf("%s “%s” was deleted successfully.", m.model.VerboseName, obj))
		http.Redirect(w, r, m.changeListURL(), http.StatusFound)
		return
	}

	m.pages.Render(w, http.StatusOK, templates.DeleteConfirmation, admin.DeleteConfirmation{
		Context:    m.context(w, r, "Are you sure?"),
		Model:      m.model,
		Objects:    []string{obj},
		Related:    related,
		IDs:        []int64{id},
		FormAction: r.URL.RequestURI(),
	})
}

// deleteSelected is the delete_selected action. The first post renders a
// confirmation listing the selection; the post carrying post=yes deletes it.
func (m *modelAdmin) deleteSelected(load func(context.Context, []int64) ([]string, error),
	del func(context.Context, []int64) (int64, error)) admin.Action {
	return admin.Action{
		Name:        "delete_selected",
		Description: "Delete selected " + m.model.VerboseNamePlural,
		Run: func(w http.ResponseWriter, r *http.Request, ids []int64) {
			if r.PostForm.Get("post") == "yes" {
				n, err := del(r.Context(), ids)
				if err != nil {
					m.serverError(w, "failed to delete selection", err)
					return
				}
				slog.Info("objects deleted", "model", m.model.Slug, "count", n, "user", middleware.UserFromContext(r.Context()))
				middleware.AddMessage(w, r, middleware.LevelSuccess,
					fmt.Sprintf("Successfully deleted %d %s.", n, m.model.Pluralize(int(n))))
				http.Redirect(w, r, r.URL.RequestURI(), http.StatusFound)
				return
			}

			objects, err := load(r.Context(), ids)
			if err != nil {
				m.serverError(w, "failed to load selection", err)
				return
			}
			m.pages.Render(w, http.StatusOK, templates.DeleteConfirmation, admin.DeleteConfirmation{
				Context:    m.context(w, r, "Are you sure?"),
				Model:      m.model,
				Objects:    objects,
				IDs:        ids,
				FormAction: r.URL.RequestURI(),
				Bulk:       true,
			})
		},
	}
}

// listPage runs list for the requested page, clamped to the last page.
func listPage[T any](q url.Values, perPage int, list func(store.Page) ([]T, int, error)) ([]T, admin.Paginator, error) {
	page := store.Page{Limit: perPage, Offset: admin.RequestedPage(q) * perPage}
	items, total, err := list(page)
	if err != nil {
		return nil, admin.Paginator{}, err
	}

	p := admin.NewPaginator(q, total, perPage)
	if p.Offset() != page.Offset {
		page.Offset = p.Offset()
		if items, total, err = list(page); err != nil {
			return nil, admin.Paginator{}, err
		}
		p = admin.NewPaginator(q, total, perPage)
	}
	return items, p, nil
}

// labels renders records for confirmation pages.
func labels[T fmt.Stringer](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

// fieldErrors returns the messages for a form field.
func fieldErrors(fe models.FieldErrors, field string) []string {
	if fe == nil {
		return nil
	}
	return fe[field]
}

// readonlyDate renders a read-only date field.
func readonlyDate(name, label string, t time.Time) admin.Field {
	return admin.Field{Name: name, Label: label, Input: "readonly", Value: admin.DisplayValue(t, "-")}
}
