// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/sample-admin/middleware"
)

// Registration describes one model registered on the site.
type Registration struct {
	AppLabel          string
	AppName           string
	Slug              string
	VerboseName       string
	VerboseNamePlural string
	// ReadOnly models have a change list only.
	ReadOnly bool
}

// ModelEntry is one model row of the app list.
type ModelEntry struct {
	Name       string
	ObjectName string
	AdminURL   string
	AddURL     string
}

// App groups the models of one application in the app list.
type App struct {
	Name     string
	AppLabel string
	AppURL   string
	Models   []ModelEntry
}

// Site is the admin site registry. It is built once at start and shared by
// all handlers.
type Site struct {
	Header            string
	Title             string
	IndexTitle        string
	URLPrefix         string
	EmptyValueDisplay string

	// ModelOrdering ranks model sections by plural name. It only affects
	// the app list when SortModels is set.
	ModelOrdering map[string]int
	SortModels    bool

	registry []Registration
}

// NewSite returns the sample_app site with its branding and model ranks.
func NewSite() *Site {
	return &Site{
		Header:            "My Django Admin Ultimate Guide",
		Title:             "My Django Admin Ultimate Guide Administration",
		IndexTitle:        "Welcome to sample_app",
		URLPrefix:         "/admin/",
		EmptyValueDisplay: "-",
		ModelOrdering: map[string]int{
			"The Choices":       1,
			"The Questions":     2,
			"The Authors":       3,
			"The Authors clone": 4,
		},
	}
}

// Register adds a model to the site. Models appear in registration order.
func (s *Site) Register(r Registration) {
	s.registry = append(s.registry, r)
}

// Registration looks up a registered model by slug.
func (s *Site) Registration(slug string) (Registration, bool) {
	for _, r := range s.registry {
		if r.Slug == slug {
			return r, true
		}
	}
	return Registration{}, false
}

// AppList returns the registered apps sorted by lower-cased name.
func (s *Site) AppList() []App {
	byLabel := map[string]*App{}
	var apps []*App
	for _, r := range s.registry {
		app, ok := byLabel[r.AppLabel]
		if !ok {
			app = &App{Name: r.AppName, AppLabel: r.AppLabel, AppURL: s.URLPrefix + r.AppLabel + "/"}
			byLabel[r.AppLabel] = app
			apps = append(apps, app)
		}
		entry := ModelEntry{
			Name:       r.VerboseNamePlural,
			ObjectName: r.Slug,
			AdminURL:   s.ChangeListURL(r),
		}
		if !r.ReadOnly {
			entry.AddURL = s.AddURL(r)
		}
		app.Models = append(app.Models, entry)
	}

	list := make([]App, len(apps))
	for i, app := range apps {
		list[i] = *app
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})

	if s.SortModels {
		for _, app := range list {
			sort.SliceStable(app.Models, func(i, j int) bool {
				return s.rank(app.Models[i].Name) < s.rank(app.Models[j].Name)
			})
		}
	}
	return list
}

// rank returns the declared rank of a section; unranked sections go last.
func (s *Site) rank(name string) int {
	if r, ok := s.ModelOrdering[name]; ok {
		return r
	}
	return len(s.ModelOrdering) + 1
}

// URLs

func (s *Site) ChangeListURL(r Registration) string {
	return s.URLPrefix + r.AppLabel + "/" + r.Slug + "/"
}

func (s *Site) AddURL(r Registration) string {
	return s.ChangeListURL(r) + "add/"
}

func (s *Site) ChangeURL(r Registration, id int64) string {
	return s.ChangeListURL(r) + strconv.FormatInt(id, 10) + "/change/"
}

func (s *Site) DeleteURL(r Registration, id int64) string {
	return s.ChangeListURL(r) + strconv.FormatInt(id, 10) + "/delete/"
}

// Context is the data every admin page template receives.
type Context struct {
	Site      *Site
	Apps      []App
	User      string
	Messages  []middleware.Message
	Request   *http.Request
	PageTitle string
	IsPopup   bool
}

// EachContext builds the common page context for a request. Pending flash
// messages are consumed.
func (s *Site) EachContext(w http.ResponseWriter, r *http.Request, title string) Context {
	return Context{
		Site:      s,
		Apps:      s.AppList(),
		User:      middleware.UserFromContext(r.Context()),
		Messages:  middleware.PopMessages(w, r),
		Request:   r,
		PageTitle: title,
		IsPopup:   r.URL.Query().Get("_popup") == "1",
	}
}
