// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/sample-admin/admin"
	"github.com/danielhkuo/sample-admin/auth"
	"github.com/danielhkuo/sample-admin/cliparse"
	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/templates"
)

const loginFailed = "Please enter the correct username and password for a staff account. " +
	"Note that both fields may be case-sensitive."

// LoginPage is the data of the login page.
type LoginPage struct {
	admin.Context
	Error    string
	Next     string
	Username string
}

// CustomViewPage is the data of the my_view page.
type CustomViewPage struct {
	admin.Context
	Text string
}

// SiteHandler serves the pages of the site itself: index, login, logout
// and my_view.
type SiteHandler struct {
	store *store.Store
	site  *admin.Site
	pages *templates.Renderer
	cfg   cliparse.Config
}

func NewSiteHandler(st *store.Store, site *admin.Site, pages *templates.Renderer, cfg cliparse.Config) *SiteHandler {
	return &SiteHandler{store: st, site: site, pages: pages, cfg: cfg}
}

// LoginURL is where RequireAdmin sends anonymous requests.
func (h *SiteHandler) LoginURL() string {
	return h.site.URLPrefix + "login/"
}

// Index handles GET /admin/
func (h *SiteHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, http.StatusOK, templates.Index, h.site.EachContext(w, r, h.site.IndexTitle))
}

// AppIndex handles GET /admin/{app}/ and lists the models of one app.
func (h *SiteHandler) AppIndex(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("app")
	for _, app := range h.site.AppList() {
		if app.AppLabel != label {
			continue
		}
		ctx := h.site.EachContext(w, r, app.Name+" administration")
		ctx.Apps = []admin.App{app}
		h.pages.Render(w, http.StatusOK, templates.Index, ctx)
		return
	}
	middleware.ErrorResponse(w, http.StatusNotFound, "")
}

// MyView handles GET /admin/my_view/
func (h *SiteHandler) MyView(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, http.StatusOK, templates.CustomView, CustomViewPage{
		Context: h.site.EachContext(w, r, ""),
		Text:    "Welcome to the new view",
	})
}

// safeNext keeps only local redirect targets.
func (h *SiteHandler) safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return h.site.URLPrefix
	}
	return next
}

// LoginForm handles GET /admin/login/
func (h *SiteHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := h.safeNext(r.URL.Query().Get("next"))

	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if _, err := auth.ParseSessionToken(cookie.Value, h.cfg.SessionSecret); err == nil {
			http.Redirect(w, r, next, http.StatusFound)
			return
		}
	}

	h.pages.Render(w, http.StatusOK, templates.Login, LoginPage{
		Context: h.site.EachContext(w, r, "Log in"),
		Next:    next,
	})
}

// Login handles POST /admin/login/
func (h *SiteHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	next := h.safeNext(r.PostForm.Get("next"))

	user, err := auth.Authenticate(r.Context(), h.store.DB(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("failed admin login", "username", username, "remote", middleware.GetClientIP(r))
		h.pages.Render(w, http.StatusOK, templates.Login, LoginPage{
			Context:  h.site.EachContext(w, r, "Log in"),
			Error:    loginFailed,
			Next:     next,
			Username: username,
		})
		return
	}
	if err != nil {
		slog.Error("failed to authenticate admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.NewSessionToken(user.Username, h.cfg.SessionSecret, auth.SessionTTL)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	middleware.SetSession(w, token)
	slog.Info("admin logged in", "user", user.Username)
	http.Redirect(w, r, next, http.StatusFound)
}

// Logout handles POST /admin/logout/
func (h *SiteHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSession(w)
	slog.Info("admin logged out", "user", middleware.UserFromContext(r.Context()))
	http.Redirect(w, r, h.LoginURL(), http.StatusFound)
}
