// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"net/url"
	"strconv"
)

// Query parameters shared by every change list
const (
	SearchParam = "q"
	PageParam   = "p"
)

// Lookup is one option of a list filter: the coded URL value and the label
// shown in the sidebar.
type Lookup struct {
	Value string
	Label string
}

// ListFilter is a sidebar filter bound to one query parameter.
type ListFilter struct {
	Title     string
	Parameter string
	Lookups   []Lookup
}

// FilterChoice is one rendered sidebar link.
type FilterChoice struct {
	Label       string
	QueryString string
	Selected    bool
}

// FilterView is a filter with its choices rendered for the current query.
type FilterView struct {
	Title   string
	Choices []FilterChoice
}

// QuestionPublishedFilter splits questions on their publication date.
var QuestionPublishedFilter = ListFilter{
	Title:     "Published questions",
	Parameter: "pub_date",
	Lookups: []Lookup{
		{Value: "Published", Label: "Published questions"},
		{Value: "Unpublished", Label: "Unpublished questions"},
	},
}

// Value returns the selected lookup value, or "" when the parameter is
// missing or not one of the lookups.
func (f ListFilter) Value(q url.Values) string {
	v := q.Get(f.Parameter)
	for _, l := range f.Lookups {
		if l.Value == v {
			return v
		}
	}
	return ""
}

// ID returns the selected value as a positive integer id, or 0.
func (f ListFilter) ID(q url.Values) int64 {
	id, err := strconv.ParseInt(f.Value(q), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// View renders the "All" choice followed by one choice per lookup. Links keep
// the other parameters and reset the page.
func (f ListFilter) View(q url.Values) FilterView {
	selected := f.Value(q)
	choices := []FilterChoice{{
		Label:       "All",
		QueryString: QueryString(q, nil, f.Parameter, PageParam),
		Selected:    selected == "",
	}}
	for _, l := range f.Lookups {
		choices = append(choices, FilterChoice{
			Label:       l.Label,
			QueryString: QueryString(q, map[string]string{f.Parameter: l.Value}, PageParam),
			Selected:    selected == l.Value,
		})
	}
	return FilterView{Title: f.Title, Choices: choices}
}

// RelatedFilter builds a filter on a foreign key from the related records.
func RelatedFilter[T any](title, parameter string, items []T, id func(T) int64, label func(T) string) ListFilter {
	f := ListFilter{Title: title, Parameter: parameter}
	for _, item := range items {
		f.Lookups = append(f.Lookups, Lookup{Value: strconv.FormatInt(id(item), 10), Label: label(item)})
	}
	return f
}

// QueryString copies q, applies set, drops the remove keys and returns the
// encoded result with a leading "?".
func QueryString(q url.Values, set map[string]string, remove ...string) string {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	for _, k := range remove {
		out.Del(k)
	}
	for k, v := range set {
		out.Set(k, v)
	}
	if len(out) == 0 {
		return "?"
	}
	return "?" + out.Encode()
}
