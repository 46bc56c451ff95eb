// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"html/template"
	"strconv"
	"strings"
	"time"
)

// ListColumn is one change list column. Value may return template.HTML for
// pre-rendered cells; anything else is escaped. Link columns point at the
// change page of the row.
type ListColumn[T any] struct {
	Header string
	Value  func(T) any
	Link   bool
	// Empty overrides the model's empty value display for this column.
	Empty string
}

// Row is one rendered change list row.
type Row struct {
	ID    int64
	Cells []template.HTML
}

// Rows renders items through cols.
func Rows[T any](cols []ListColumn[T], items []T, id func(T) int64, changeURL func(int64) string, empty string) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := Row{ID: id(item), Cells: make([]template.HTML, len(cols))}
		for i, c := range cols {
			var cell template.HTML
			switch v := c.Value(item).(type) {
			case template.HTML:
				cell = v
			default:
				e := empty
				if c.Empty != "" {
					e = c.Empty
				}
				cell = template.HTML(template.HTMLEscapeString(DisplayValue(v, e)))
			}
			if c.Link {
				cell = template.HTML(`<a href="` + template.HTMLEscapeString(changeURL(row.ID)) + `">`) + cell + "</a>"
			}
			row.Cells[i] = cell
		}
		rows = append(rows, row)
	}
	return rows
}

// Headers returns the column headers of cols.
func Headers[T any](cols []ListColumn[T]) []string {
	h := make([]string, len(cols))
	for i, c := range cols {
		h[i] = c.Header
	}
	return h
}

// ActionOption is one entry of the action dropdown.
type ActionOption struct {
	Name        string
	Description string
}

func (a Actions) Options() []ActionOption {
	opts := make([]ActionOption, len(a))
	for i, act := range a {
		opts[i] = ActionOption{Name: act.Name, Description: act.Description}
	}
	return opts
}

// ChangeList is the data of the change_list page.
type ChangeList struct {
	Context
	Model         Registration
	AddURL        string
	Headers       []string
	Rows          []Row
	Filters       []FilterView
	SearchEnabled bool
	SearchHelp    string
	Query         string
	Actions       []ActionOption
	Paginator     Paginator
	FullCount     int

	// ChartData is the serialized author chart, empty for other models.
	ChartData string
}

// Field is one form input.
type Field struct {
	Name   string
	Label  string
	Input  string // text, number, datetime, readonly, rawid, checkbox, select
	Value  string
	Errors []string

	// Raw-id widgets only
	LookupURL   string
	RelatedName string

	// Select widgets only
	Options []Option
}

// Option is one entry of a select widget.
type Option struct {
	Value string
	Label string
}

// Fieldset groups fields under a heading. Collapsed fieldsets start hidden.
type Fieldset struct {
	Name     string
	Collapse bool
	Fields   []Field
}

// InlineRow is one stacked inline form.
type InlineRow struct {
	Index     int
	ID        int64
	Title     string
	Fields    []Field
	CanDelete bool
	Delete    bool
}

// Inline is an inline formset embedded in a parent form.
type Inline struct {
	Prefix       string
	Title        string
	Rows         []InlineRow
	InitialForms int
}

func (in *Inline) TotalForms() int {
	return len(in.Rows)
}

// FieldName returns the posted name of a field in row i.
func (in *Inline) FieldName(i int, field string) string {
	return in.Prefix + "-" + strconv.Itoa(i) + "-" + field
}

// ChangeForm is the data of the add/change page.
type ChangeForm struct {
	Context
	Model          Registration
	Add            bool
	ObjectID       int64
	Object         string
	FormAction     string
	DeleteURL      string
	Fieldsets      []Fieldset
	Inline         *Inline
	SaveOnTop      bool
	NonFieldErrors []string

	// NbQuestion is the serialized question count of an author.
	NbQuestion string
}

// HasErrors reports whether any field of the form or its inline has errors.
func (f ChangeForm) HasErrors() bool {
	if len(f.NonFieldErrors) > 0 {
		return true
	}
	for _, fs := range f.Fieldsets {
		for _, fld := range fs.Fields {
			if len(fld.Errors) > 0 {
				return true
			}
		}
	}
	if f.Inline != nil {
		for _, row := range f.Inline.Rows {
			for _, fld := range row.Fields {
				if len(fld.Errors) > 0 {
					return true
				}
			}
		}
	}
	return false
}

// DeleteConfirmation lists the objects a delete would remove.
type DeleteConfirmation struct {
	Context
	Model      Registration
	Objects    []string
	Related    []string
	IDs        []int64
	FormAction string
	// Bulk is set for the delete_selected action.
	Bulk bool
}

// Form value helpers

// DateTimeInputFormat is the value format of datetime-local inputs.
const DateTimeInputFormat = "2006-01-02T15:04"

var dateTimeInputFormats = []string{
	DateTimeInputFormat,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime parses a posted datetime in UTC. Empty input is the zero
// time; ok is false when the input cannot be parsed.
func ParseDateTime(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range dateTimeInputFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTimeInput renders t for a datetime-local input.
func FormatDateTimeInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateTimeInputFormat)
}

// ParseID parses a posted positive id; 0 means missing or invalid.
func ParseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
