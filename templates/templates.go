// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/sample-admin/admin"
)

//go:embed *.html
var files embed.FS

// Page templates
const (
	Login               = "login.html"
	Index               = "index.html"
	CustomView          = "custom_view.html"
	ChangeList          = "change_list.html"
	ChangeForm          = "change_form.html"
	DeleteConfirmation  = "delete_confirmation.html"
	MakePublishedCustom = "custom_makepublished.html"
)

var pages = []string{Login, Index, CustomView, ChangeList, ChangeForm, DeleteConfirmation, MakePublishedCustom}

// Renderer holds one parsed template set per page, each layered over base.html.
type Renderer struct {
	pages map[string]*template.Template
}

// Funcs returns the helpers every page can use. Extra funcs, such as the
// counters from package tags, are merged on top.
func Funcs(extra template.FuncMap) template.FuncMap {
	funcs := template.FuncMap{
		"intcomma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"naturaltime": func(t time.Time) string {
			return humanize.Time(t)
		},
		"displaydate": func(t time.Time) string {
			return admin.DisplayValue(t, "-")
		},
	}
	for name, fn := range extra {
		funcs[name] = fn
	}
	return funcs
}

// New parses every page with the given extra funcs.
func New(extra template.FuncMap) (*Renderer, error) {
	base, err := template.New("base.html").Funcs(Funcs(extra)).ParseFS(files, "base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base template: %w", err)
		}
		if _, err := t.ParseFS(files, name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes a page into a buffer and writes it with the given status.
// Execution errors answer 500 instead of a truncated page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		slog.Error("unknown template", "template", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
