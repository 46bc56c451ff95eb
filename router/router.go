// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/sample-admin/cliparse"
	"github.com/danielhkuo/sample-admin/handlers"
	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/tags"
	"github.com/danielhkuo/sample-admin/templates"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	st := store.New(db)
	site := handlers.NewSite(cfg.SortModels)
	pages, err := templates.New(tags.New(st).FuncMap())
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize handlers
	siteHandler := handlers.NewSiteHandler(st, site, pages, cfg)
	modelAdmins := []handlers.ModelAdmin{
		handlers.NewAuthorHandler(st, site, pages),
		handlers.NewQuestionHandler(st, site, pages),
		handlers.NewChoiceHandler(st, site, pages),
		handlers.NewAuthorCloneHandler(st, site, pages),
	}

	requireAdmin := middleware.RequireAdmin(cfg.SessionSecret, siteHandler.LoginURL())
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(requireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, site.URLPrefix, http.StatusFound)
	})

	// Session (public)
	mux.HandleFunc("GET "+siteHandler.LoginURL()+"{$}", middleware.WithLogging(siteHandler.LoginForm))
	mux.HandleFunc("POST "+siteHandler.LoginURL()+"{$}", middleware.WithLogging(siteHandler.Login))
	mux.HandleFunc("POST "+site.URLPrefix+"logout/{$}", admin(siteHandler.Logout))

	// Site pages
	mux.HandleFunc("GET "+site.URLPrefix+"{$}", admin(siteHandler.Index))
	mux.HandleFunc("GET "+site.URLPrefix+"my_view/{$}", admin(siteHandler.MyView))
	mux.HandleFunc("GET "+site.URLPrefix+"{app}/{$}", admin(siteHandler.AppIndex))

	// Model pages
	for _, ma := range modelAdmins {
		prefix := site.ChangeListURL(ma.Model())

		mux.HandleFunc("GET "+prefix+"{$}", admin(ma.ChangeList))
		mux.HandleFunc("POST "+prefix+"{$}", admin(ma.RunAction))
		mux.HandleFunc("GET "+prefix+"add/{$}", admin(ma.AddView))
		mux.HandleFunc("POST "+prefix+"add/{$}", admin(ma.AddView))
		mux.HandleFunc("GET "+prefix+"{id}/change/{$}", admin(ma.ChangeView))
		mux.HandleFunc("POST "+prefix+"{id}/change/{$}", admin(ma.ChangeView))
		mux.HandleFunc("GET "+prefix+"{id}/delete/{$}", admin(ma.DeleteView))
		mux.HandleFunc("POST "+prefix+"{id}/delete/{$}", admin(ma.DeleteView))
	}

	// Read-only models
	users := handlers.NewUserHandler(st, site, pages)
	mux.HandleFunc("GET "+site.ChangeListURL(users.Model())+"{$}", admin(users.ChangeList))

	return mux, nil
}
