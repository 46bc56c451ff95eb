// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/sample-admin/middleware"
	"github.com/danielhkuo/sample-admin/testutil"
)

func TestAuthorChangeList(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)

	testutil.CreateTestAuthor(t, env.db, "john")
	testutil.CreateTestAuthor(t, env.db, "jane")
	testutil.CreateTestAuthor(t, env.db, "alice")

	tests := []struct {
		name       string
		path       string
		contains   []string
		notContain []string
	}{
		{
			name:       "only j authors",
			path:       "/admin/sample_app/author/",
			contains:   []string{"john", "jane", "2 The Authors", "myChart", "JSON.parse("},
			notContain: []string{"alice"},
		},
		{
			name:       "search",
			path:       "/admin/sample_app/author/?q=JOH",
			contains:   []string{"john", "1 The Author", "(2 total)"},
			notContain: []string{"jane", "alice"},
		},
		{
			name:       "search outside prefix",
			path:       "/admin/sample_app/author/?q=alice",
			contains:   []string{"0 The Authors"},
			notContain: []string{">alice<"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := adminRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			h.ChangeList(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			testutil.AssertContains(t, w, tt.contains...)
			for _, s := range tt.notContain {
				if strings.Contains(w.Body.String(), s) {
					t.Errorf("Expected body not to contain %q", s)
				}
			}
		})
	}
}

func TestAuthorChangeViewHidesNonJAuthors(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)

	alice := testutil.CreateTestAuthor(t, env.db, "alice")
	id := strconv.FormatInt(alice.ID, 10)

	req := adminRequest("GET", "/admin/sample_app/author/"+id+"/change/", nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	h.ChangeView(w, req)

	testutil.AssertRedirect(t, w, "/admin/")
	assertFlash(t, w, middleware.LevelWarning,
		"The Author with ID “"+id+"” doesn't exist. Perhaps it was deleted?")
}

func TestAuthorChangeView(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)

	john := testutil.CreateTestAuthor(t, env.db, "john")
	testutil.CreateTestQuestion(t, env.db, john.ID, "Favourite colour?", time.Now())
	testutil.CreateTestQuestion(t, env.db, john.ID, "Favourite food?", time.Now())
	id := strconv.FormatInt(john.ID, 10)

	req := adminRequest("GET", "/admin/sample_app/author/"+id+"/change/", nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	h.ChangeView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w,
		"Change The Author",
		"Author information",
		"Favourite colour?",
		"Favourite food?",
		"nbQuestion",
		`name="question_set-TOTAL_FORMS" value="5"`,
		`name="question_set-INITIAL_FORMS" value="2"`,
	)
}

func TestAuthorSaveWithInlineQuestions(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)
	ctx := context.Background()

	john := testutil.CreateTestAuthor(t, env.db, "john")
	keep := testutil.CreateTestQuestion(t, env.db, john.ID, "Keep me?", time.Now())
	drop := testutil.CreateTestQuestion(t, env.db, john.ID, "Drop me?", time.Now())
	id := strconv.FormatInt(john.ID, 10)

	form := url.Values{
		"name":                     {"johnny"},
		"question_set-TOTAL_FORMS": {"4"},

		"question_set-0-id":            {strconv.FormatInt(keep.ID, 10)},
		"question_set-0-question_text": {"Kept and edited?"},
		"question_set-0-pub_date":      {"2026-01-02T10:00"},

		"question_set-1-id":            {strconv.FormatInt(drop.ID, 10)},
		"question_set-1-question_text": {"Drop me?"},
		"question_set-1-pub_date":      {"2026-01-02T10:00"},
		"question_set-1-DELETE":        {"on"},

		"question_set-2-question_text": {"Brand new?"},
		"question_set-2-pub_date":      {"2026-03-04 08:30"},

		"question_set-3-question_text": {""},
		"question_set-3-pub_date":      {""},
		"_save":                        {"Save"},
	}
	req := adminRequest("POST", "/admin/sample_app/author/"+id+"/change/", form)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	h.ChangeView(w, req)

	testutil.AssertRedirect(t, w, "/admin/sample_app/author/")
	assertFlash(t, w, middleware.LevelSuccess, "The Author “johnny” was changed successfully.")

	questions, err := env.store.QuestionsByAuthor(ctx, john.ID)
	if err != nil {
		t.Fatalf("QuestionsByAuthor failed: %v", err)
	}
	texts := map[string]bool{}
	for _, q := range questions {
		texts[q.QuestionText] = true
	}
	if len(questions) != 2 || !texts["Kept and edited?"] || !texts["Brand new?"] {
		t.Errorf("Unexpected questions after save: %+v", questions)
	}

	a, err := env.store.GetAuthor(ctx, john.ID)
	if err != nil {
		t.Fatalf("GetAuthor failed: %v", err)
	}
	if a.Name != "johnny" {
		t.Errorf("Expected name johnny, got %q", a.Name)
	}
}

func TestAuthorSaveInvalidInline(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)

	form := url.Values{
		"name":                         {"jim"},
		"question_set-TOTAL_FORMS":     {"3"},
		"question_set-0-question_text": {"When?"},
		"question_set-0-pub_date":      {"not a date"},
	}
	req := adminRequest("POST", "/admin/sample_app/author/add/", form)
	w := httptest.NewRecorder()

	h.AddView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "Enter a valid date/time.", `value="not a date"`, "Add The Author")

	n, err := env.store.CountAuthors(context.Background())
	if err != nil {
		t.Fatalf("CountAuthors failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected no author saved, got %d", n)
	}
}

func TestAuthorAddRequiresName(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)

	req := adminRequest("POST", "/admin/sample_app/author/add/", url.Values{"name": {"  "}})
	w := httptest.NewRecorder()

	h.AddView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "This field is required.")
}

func TestAuthorDeleteSelected(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)
	ctx := context.Background()

	john := testutil.CreateTestAuthor(t, env.db, "john")
	alice := testutil.CreateTestAuthor(t, env.db, "alice")
	selected := []string{strconv.FormatInt(john.ID, 10), strconv.FormatInt(alice.ID, 10)}

	t.Run("confirmation", func(t *testing.T) {
		form := url.Values{"action": {"delete_selected"}, "_selected_action": selected}
		req := adminRequest("POST", "/admin/sample_app/author/", form)
		w := httptest.NewRecorder()

		h.RunAction(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "Are you sure?", "john", `name="post" value="yes"`)
		if strings.Contains(w.Body.String(), "alice") {
			t.Error("Expected hidden author to be left out of the confirmation")
		}
	})

	t.Run("delete", func(t *testing.T) {
		form := url.Values{"action": {"delete_selected"}, "_selected_action": selected, "post": {"yes"}}
		req := adminRequest("POST", "/admin/sample_app/author/", form)
		w := httptest.NewRecorder()

		h.RunAction(w, req)

		testutil.AssertRedirect(t, w, "/admin/sample_app/author/")
		assertFlash(t, w, middleware.LevelSuccess, "Successfully deleted 1 The Author.")

		if _, err := env.store.GetAuthor(ctx, alice.ID); err != nil {
			t.Errorf("Expected hidden author to survive, got %v", err)
		}
		if _, err := env.store.GetAuthor(ctx, john.ID); err == nil {
			t.Error("Expected john to be deleted")
		}
	})
}

func TestAuthorDeleteView(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthorHandler(env.store, env.site, env.pages)

	john := testutil.CreateTestAuthor(t, env.db, "john")
	q := testutil.CreateTestQuestion(t, env.db, john.ID, "Tea or coffee?", time.Now())
	testutil.CreateTestChoice(t, env.db, q.ID, "Tea", 0)
	id := strconv.FormatInt(john.ID, 10)

	req := adminRequest("GET", "/admin/sample_app/author/"+id+"/delete/", nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.DeleteView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "The Question: Tea or coffee?", "The Choice: Tea")

	req = adminRequest("POST", "/admin/sample_app/author/"+id+"/delete/", url.Values{"post": {"yes"}})
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.DeleteView(w, req)

	testutil.AssertRedirect(t, w, "/admin/sample_app/author/")
	assertFlash(t, w, middleware.LevelSuccess, "The Author “john” was deleted successfully.")

	n, err := env.store.CountChoices(context.Background())
	if err != nil {
		t.Fatalf("CountChoices failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected choices to cascade, got %d", n)
	}
}
