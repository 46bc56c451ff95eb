// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/sample-admin/admin"
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/templates"
)

const usersPerPage = 100

var userColumns = []admin.ListColumn[models.AdminUser]{
	{Header: "Username", Value: func(u models.AdminUser) any { return u.Username }},
	{Header: "Date joined", Value: func(u models.AdminUser) any { return u.CreatedDate }},
}

// UserHandler lists the admin accounts. Accounts are managed through
// configuration, so there are no forms or actions.
type UserHandler struct {
	modelAdmin
}

func NewUserHandler(st *store.Store, site *admin.Site, pages *templates.Renderer) *UserHandler {
	return &UserHandler{modelAdmin{store: st, site: site, pages: pages, model: UserModel}}
}

// ChangeList handles GET /admin/auth/user/
func (h *UserHandler) ChangeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get(admin.SearchParam)

	users, p, err := listPage(q, usersPerPage, func(page store.Page) ([]models.AdminUser, int, error) {
		return h.store.ListAdminUsers(r.Context(), store.AdminUserFilter{Search: search, Page: page})
	})
	if err != nil {
		h.serverError(w, "failed to list admin users", err)
		return
	}

	_, fullCount, err := h.store.ListAdminUsers(r.Context(), store.AdminUserFilter{Page: store.Page{Limit: 1}})
	if err != nil {
		h.serverError(w, "failed to count admin users", err)
		return
	}

	h.pages.Render(w, http.StatusOK, templates.ChangeList, admin.ChangeList{
		Context: h.context(w, r, "Select "+h.model.VerboseName+" to view"),
		Model:   h.model,
		Headers: admin.Headers(userColumns),
		Rows: admin.Rows(userColumns, users,
			func(u models.AdminUser) int64 { return u.ID },
			func(int64) string { return "" },
			h.site.EmptyValueDisplay),
		SearchEnabled: true,
		Query:         search,
		Paginator:     p,
		FullCount:     fullCount,
	})
}
