// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/sample-admin/middleware"
)

type viewRow struct {
	id   int64
	name string
	at   time.Time
	ok   bool
}

func TestRows(t *testing.T) {
	cols := []ListColumn[viewRow]{
		{Header: "Name", Link: true, Value: func(r viewRow) any { return r.name }},
		{Header: "Created", Value: func(r viewRow) any { return r.at }, Empty: "Unknown"},
		{Header: "OK", Value: func(r viewRow) any { return BooleanIcon(r.ok) }},
	}
	items := []viewRow{
		{id: 4, name: "<b>john</b>", at: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), ok: true},
		{id: 5, name: ""},
	}

	rows := Rows(cols, items, func(r viewRow) int64 { return r.id },
		func(id int64) string { return fmt.Sprintf("/admin/sample_app/author/%d/change/", id) }, "-")

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ID != 4 {
		t.Errorf("Expected id 4, got %d", first.ID)
	}
	if first.Cells[0] != `<a href="/admin/sample_app/author/4/change/">&lt;b&gt;john&lt;/b&gt;</a>` {
		t.Errorf("Unexpected link cell: %s", first.Cells[0])
	}
	if first.Cells[1] != "Jan. 2, 2024, 09:30" {
		t.Errorf("Unexpected date cell: %s", first.Cells[1])
	}
	if !strings.Contains(string(first.Cells[2]), "icon-yes") {
		t.Errorf("Expected HTML cell to pass through, got %s", first.Cells[2])
	}

	second := rows[1]
	if second.Cells[0] != `<a href="/admin/sample_app/author/5/change/">-</a>` {
		t.Errorf("Expected site empty display, got %s", second.Cells[0])
	}
	if second.Cells[1] != "Unknown" {
		t.Errorf("Expected column empty display, got %s", second.Cells[1])
	}

	headers := Headers(cols)
	if len(headers) != 3 || headers[1] != "Created" {
		t.Errorf("Unexpected headers: %v", headers)
	}
}

func TestChoicesLink(t *testing.T) {
	s := testSite()
	choices, _ := s.Registration("choice")

	expected := template.HTML(`<a class="button" href="/admin/sample_app/choice/?question__id__exact=12" target="blank">Choices</a>&nbsp;`)
	if got := ChoicesLink(s, choices, 12); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestDisplayValue(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "-"},
		{"empty string", "", "-"},
		{"string", "john", "john"},
		{"zero time", time.Time{}, "-"},
		{"time", time.Date(2024, 12, 25, 18, 0, 0, 0, time.UTC), "Dec. 25, 2024, 18:00"},
		{"int", 3, "3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayValue(tc.value, "-"); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{"2024-03-05T14:07", time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC), true},
		{"2024-03-05 14:07:30", time.Date(2024, 3, 5, 14, 7, 30, 0, time.UTC), true},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"  ", time.Time{}, true},
		{"05/03/2024", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseDateTime(tc.input)
			if ok != tc.ok {
				t.Fatalf("Expected ok=%v, got %v", tc.ok, ok)
			}
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}

	ts := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	if FormatDateTimeInput(ts) != "2024-03-05T14:07" || FormatDateTimeInput(time.Time{}) != "" {
		t.Error("Unexpected datetime input formatting")
	}
}

func TestParseID(t *testing.T) {
	if ParseID("42") != 42 || ParseID(" 7 ") != 7 {
		t.Error("Expected valid ids to parse")
	}
	if ParseID("") != 0 || ParseID("-3") != 0 || ParseID("x") != 0 {
		t.Error("Expected invalid ids to be 0")
	}
}

func TestInline(t *testing.T) {
	in := &Inline{Prefix: "question_set", Rows: make([]InlineRow, 4), InitialForms: 1}
	if in.TotalForms() != 4 {
		t.Errorf("Expected 4 forms, got %d", in.TotalForms())
	}
	if got := in.FieldName(2, "question_text"); got != "question_set-2-question_text" {
		t.Errorf("Unexpected field name '%s'", got)
	}
}

func TestChangeForm_HasErrors(t *testing.T) {
	f := ChangeForm{Fieldsets: []Fieldset{{Fields: []Field{{Name: "name"}}}}}
	if f.HasErrors() {
		t.Error("Expected no errors")
	}

	f.Inline = &Inline{Rows: []InlineRow{{Fields: []Field{{Errors: []string{"This field is required."}}}}}}
	if !f.HasErrors() {
		t.Error("Expected inline errors to count")
	}
}

func TestDispatch(t *testing.T) {
	var ran []int64
	actions := Actions{{
		Name:        "make_published",
		Description: "Mark selected questions as published",
		Run: func(w http.ResponseWriter, r *http.Request, ids []int64) {
			ran = ids
			w.WriteHeader(http.StatusNoContent)
		},
	}}

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/admin/sample_app/question/?q=jo", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		Dispatch(w, req, actions)
		return w
	}

	cookieText := func(w *httptest.ResponseRecorder) string {
		req := httptest.NewRequest("GET", "/", nil)
		for _, c := range w.Result().Cookies() {
			req.AddCookie(c)
		}
		msgs := middleware.PopMessages(httptest.NewRecorder(), req)
		if len(msgs) != 1 {
			return ""
		}
		return msgs[0].Text
	}

	t.Run("runs action", func(t *testing.T) {
		w := post(url.Values{"action": {"make_published"}, "_selected_action": {"3", "x", "5"}})
		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected action to run, got %d", w.Code)
		}
		if len(ran) != 2 || ran[0] != 3 || ran[1] != 5 {
			t.Errorf("Expected ids [3 5], got %v", ran)
		}
	})

	t.Run("no selection", func(t *testing.T) {
		w := post(url.Values{"action": {"make_published"}})
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/sample_app/question/?q=jo" {
			t.Fatalf("Expected redirect back, got %d %s", w.Code, w.Header().Get("Location"))
		}
		expected := "Items must be selected in order to perform actions on them. No items have been changed."
		if got := cookieText(w); got != expected {
			t.Errorf("Expected message '%s', got '%s'", expected, got)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		w := post(url.Values{"action": {"drop_tables"}, "_selected_action": {"3"}})
		if w.Code != http.StatusFound {
			t.Fatalf("Expected redirect, got %d", w.Code)
		}
		if got := cookieText(w); got != "No action selected." {
			t.Errorf("Expected 'No action selected.', got '%s'", got)
		}
	})

	opts := actions.Options()
	if len(opts) != 1 || opts[0].Name != "make_published" {
		t.Errorf("Unexpected options: %v", opts)
	}
}
