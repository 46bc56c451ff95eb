// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/sample-admin/middleware"
)

// Form fields posted by the change list action bar
const (
	ActionField   = "action"
	SelectedField = "_selected_action"
)

// ActionFunc runs a bulk action on the selected ids. It writes the whole
// response, usually a redirect or an intermediate page.
type ActionFunc func(w http.ResponseWriter, r *http.Request, ids []int64)

type Action struct {
	Name        string
	Description string
	Run         ActionFunc
}

type Actions []Action

func (a Actions) Get(name string) (Action, bool) {
	for _, act := range a {
		if act.Name == name {
			return act, true
		}
	}
	return Action{}, false
}

// SelectedIDs returns the positive ids posted in _selected_action.
func SelectedIDs(r *http.Request) []int64 {
	var ids []int64
	for _, v := range r.PostForm[SelectedField] {
		id, err := strconv.ParseInt(v, 10, 64)
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Dispatch runs the posted action against the posted selection. Missing
// actions or an empty selection redirect back to the change list with a
// warning.
func Dispatch(w http.ResponseWriter, r *http.Request, actions Actions) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}

	back := r.URL.RequestURI()

	act, ok := actions.Get(r.PostForm.Get(ActionField))
	if !ok {
		middleware.AddMessage(w, r, middleware.LevelWarning, "No action selected.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}

	ids := SelectedIDs(r)
	if len(ids) == 0 {
		middleware.AddMessage(w, r, middleware.LevelWarning,
			"Items must be selected in order to perform actions on them. No items have been changed.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}

	act.Run(w, r, ids)
}

// Pluralize picks the verbose name matching a count.
func (r Registration) Pluralize(n int) string {
	if n == 1 {
		return r.VerboseName
	}
	return r.VerboseNamePlural
}
