// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/sample-admin/admin"
	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/templates"
)

const authorClonesPerPage = 100

var authorCloneColumns = []admin.ListColumn[models.AuthorClone]{
	{Header: "Name", Link: true, Value: func(a models.AuthorClone) any { return a.Name }},
	{Header: "CreatedDate", Value: func(a models.AuthorClone) any { return a.CreatedDate }},
	{Header: "UpdatedDate", Value: func(a models.AuthorClone) any { return a.UpdatedDate }},
}

// AuthorCloneHandler is the plain counterpart of AuthorHandler: no name
// restriction, chart or inline.
type AuthorCloneHandler struct {
	modelAdmin
}

func NewAuthorCloneHandler(st *store.Store, site *admin.Site, pages *templates.Renderer) *AuthorCloneHandler {
	return &AuthorCloneHandler{modelAdmin{store: st, site: site, pages: pages, model: AuthorCloneModel}}
}

func (h *AuthorCloneHandler) actions() admin.Actions {
	return admin.Actions{
		h.deleteSelected(
			func(ctx context.Context, ids []int64) ([]string, error) {
				clones, _, err := h.store.ListAuthorClones(ctx, store.AuthorFilter{IDs: ids})
				return labels(clones), err
			},
			h.store.DeleteAuthorClones,
		),
	}
}

// ChangeList handles GET /admin/sample_app/authorclone/
func (h *AuthorCloneHandler) ChangeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get(admin.SearchParam)

	clones, p, err := listPage(q, authorClonesPerPage, func(page store.Page) ([]models.AuthorClone, int, error) {
		return h.store.ListAuthorClones(r.Context(), store.AuthorFilter{Search: search, Page: page})
	})
	if err != nil {
		h.serverError(w, "failed to list author clones", err)
		return
	}

	_, fullCount, err := h.store.ListAuthorClones(r.Context(), store.AuthorFilter{Page: store.Page{Limit: 1}})
	if err != nil {
		h.serverError(w, "failed to count author clones", err)
		return
	}

	h.pages.Render(w, http.StatusOK, templates.ChangeList, admin.ChangeList{
		Context: h.context(w, r, "Select "+h.model.VerboseName+" to change"),
		Model:   h.model,
		AddURL:  h.site.AddURL(h.model),
		Headers: admin.Headers(authorCloneColumns),
		Rows: admin.Rows(authorCloneColumns, clones,
			func(a models.AuthorClone) int64 { return a.ID },
			func(id int64) string { return h.site.ChangeURL(h.model, id) },
			h.site.EmptyValueDisplay),
		SearchEnabled: true,
		Query:         search,
		Actions:       h.actions().Options(),
		Paginator:     p,
		FullCount:     fullCount,
	})
}

// RunAction handles POST /admin/sample_app/authorclone/
func (h *AuthorCloneHandler) RunAction(w http.ResponseWriter, r *http.Request) {
	admin.Dispatch(w, r, h.actions())
}

// AddView handles GET and POST /admin/sample_app/authorclone/add/
func (h *AuthorCloneHandler) AddView(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.save(w, r, models.AuthorClone{})
		return
	}
	h.renderForm(w, r, h.form(models.AuthorClone{}, nil))
}

// ChangeView handles GET and POST /admin/sample_app/authorclone/{id}/change/
func (h *AuthorCloneHandler) ChangeView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetAuthorClone(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}

	if r.Method == http.MethodPost {
		h.save(w, r, c)
		return
	}
	h.renderForm(w, r, h.form(c, nil))
}

func (h *AuthorCloneHandler) save(w http.ResponseWriter, r *http.Request, c models.AuthorClone) {
	if !parseForm(w, r) {
		return
	}

	added := c.ID == 0
	c.Name = strings.TrimSpace(r.PostForm.Get("name"))
	if errs := models.Validate(models.AuthorForm{Name: c.Name}); errs != nil {
		h.renderForm(w, r, h.form(c, errs))
		return
	}

	var err error
	if added {
		err = h.store.CreateAuthorClone(r.Context(), &c)
	} else {
		err = h.store.UpdateAuthorClone(r.Context(), &c)
	}
	if err != nil {
		h.serverError(w, "failed to save author clone", err)
		return
	}

	slog.Info("author clone saved", "author_clone_id", c.ID, "user", middleware.UserFromContext(r.Context()))
	h.saved(w, r, c.ID, c.String(), added)
}

func (h *AuthorCloneHandler) form(c models.AuthorClone, errs models.FieldErrors) admin.ChangeForm {
	return admin.ChangeForm{
		Add:      c.ID == 0,
		ObjectID: c.ID,
		Object:   c.String(),
		Fieldsets: []admin.Fieldset{{
			Name: "Author information",
			Fields: []admin.Field{
				{Name: "name", Label: "Name", Input: "text", Value: c.Name, Errors: fieldErrors(errs, "Name")},
				readonlyDate("createdDate", "CreatedDate", c.CreatedDate),
				readonlyDate("updatedDate", "UpdatedDate", c.UpdatedDate),
			},
		}},
	}
}

// DeleteView handles GET and POST /admin/sample_app/authorclone/{id}/delete/
func (h *AuthorCloneHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetAuthorClone(r.Context(), id)
	if h.lookupFailed(w, r, id, err) {
		return
	}
	h.deleteView(w, r, id, c.String(), nil, h.store.DeleteAuthorClones)
}
