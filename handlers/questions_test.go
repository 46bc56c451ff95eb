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
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/testutil"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func setupQuestionHandler(t *testing.T) (*testEnv, *QuestionHandler) {
	t.Helper()
	env := setupTestEnv(t)
	env.store.Clock = func() time.Time { return testNow }
	return env, NewQuestionHandler(env.store, env.site, env.pages)
}

func questionIDs(qs ...models.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = strconv.FormatInt(q.ID, 10)
	}
	return out
}

func TestQuestionChangeList(t *testing.T) {
	env, h := setupQuestionHandler(t)

	john := testutil.CreateTestAuthor(t, env.db, "john")
	alice := testutil.CreateTestAuthor(t, env.db, "alice")
	testutil.CreateTestQuestion(t, env.db, john.ID, "Old question?", testNow.AddDate(0, 0, -3))
	testutil.CreateTestQuestion(t, env.db, alice.ID, "Future question?", testNow.AddDate(0, 0, 3))

	tests := []struct {
		name       string
		path       string
		contains   []string
		notContain []string
	}{
		{
			name: "all",
			path: "/admin/sample_app/question/",
			contains: []string{
				"Old question?", "Future question?", "2 The Questions",
				"By Published questions", "By refAuthor",
				"make_published_custom", "export_to_csv", "Mark selected questions as published",
			},
			notContain: []string{"myChart"},
		},
		{
			name:       "published",
			path:       "/admin/sample_app/question/?pub_date=Published",
			contains:   []string{"Old question?", "1 The Question"},
			notContain: []string{"Future question?"},
		},
		{
			name:       "unpublished",
			path:       "/admin/sample_app/question/?pub_date=Unpublished",
			contains:   []string{"Future question?"},
			notContain: []string{"Old question?"},
		},
		{
			name:       "by author",
			path:       "/admin/sample_app/question/?refAuthor__id__exact=" + strconv.FormatInt(alice.ID, 10),
			contains:   []string{"Future question?"},
			notContain: []string{"Old question?"},
		},
		{
			name:       "search by author name",
			path:       "/admin/sample_app/question/?q=JOHN",
			contains:   []string{"Old question?", "(2 total)"},
			notContain: []string{"Future question?"},
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

func TestQuestionMakePublished(t *testing.T) {
	env, h := setupQuestionHandler(t)
	ctx := context.Background()

	john := testutil.CreateTestAuthor(t, env.db, "john")
	q1 := testutil.CreateTestQuestion(t, env.db, john.ID, "One?", testNow.AddDate(0, 1, 0))
	q2 := testutil.CreateTestQuestion(t, env.db, john.ID, "Two?", testNow.AddDate(0, 1, 0))

	form := url.Values{"action": {"make_published"}, "_selected_action": questionIDs(q1)}
	req := adminRequest("POST", "/admin/sample_app/question/", form)
	w := httptest.NewRecorder()

	h.RunAction(w, req)

	testutil.AssertRedirect(t, w, "/admin/sample_app/question/")
	if got := flashes(w); len(got) != 0 {
		t.Errorf("Expected no message, got %+v", got)
	}

	want := testNow.Add(-24 * time.Hour)
	got, err := env.store.GetQuestion(ctx, q1.ID)
	if err != nil {
		t.Fatalf("GetQuestion failed: %v", err)
	}
	if !got.PubDate.Equal(want) {
		t.Errorf("Expected pub date %v, got %v", want, got.PubDate)
	}
	if !got.HasBeenPublished(testNow) {
		t.Error("Expected question to be published")
	}

	untouched, err := env.store.GetQuestion(ctx, q2.ID)
	if err != nil {
		t.Fatalf("GetQuestion failed: %v", err)
	}
	if untouched.PubDate.Equal(want) {
		t.Error("Expected unselected question to keep its pub date")
	}
}

func TestQuestionMakePublishedCustom(t *testing.T) {
	env, h := setupQuestionHandler(t)
	ctx := context.Background()

	john := testutil.CreateTestAuthor(t, env.db, "john")
	q1 := testutil.CreateTestQuestion(t, env.db, john.ID, "First?", testNow.AddDate(0, 0, 5))
	q2 := testutil.CreateTestQuestion(t, env.db, john.ID, "Second?", testNow.AddDate(0, 0, 6))
	selected := questionIDs(q1, q2)

	t.Run("confirmation", func(t *testing.T) {
		form := url.Values{"action": {"make_published_custom"}, "_selected_action": selected}
		req := adminRequest("POST", "/admin/sample_app/question/", form)
		w := httptest.NewRecorder()

		h.RunAction(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "First?", "Second?", `name="apply"`, `value="make_published_custom"`)

		q, err := env.store.GetQuestion(ctx, q1.ID)
		if err != nil {
			t.Fatalf("GetQuestion failed: %v", err)
		}
		if q.HasBeenPublished(testNow) {
			t.Error("Expected the confirmation page not to publish")
		}
	})

	t.Run("apply", func(t *testing.T) {
		form := url.Values{"action": {"make_published_custom"}, "_selected_action": selected, "apply": {"Confirm"}}
		req := adminRequest("POST", "/admin/sample_app/question/", form)
		w := httptest.NewRecorder()

		h.RunAction(w, req)

		testutil.AssertRedirect(t, w, "/admin/sample_app/question/")
		assertFlash(t, w, middleware.LevelInfo, "Changed to published on 2 questions")

		published, _, err := env.store.ListQuestions(ctx, store.QuestionFilter{Published: store.Published, Now: testNow})
		if err != nil {
			t.Fatalf("ListQuestions failed: %v", err)
		}
		if len(published) != 2 {
			t.Errorf("Expected 2 published questions, got %d", len(published))
		}
	})
}

func TestQuestionExportCSV(t *testing.T) {
	env, h := setupQuestionHandler(t)

	john := testutil.CreateTestAuthor(t, env.db, "john")
	pub := time.Date(2026, 10, 1, 9, 15, 0, 0, time.UTC)
	q1 := testutil.CreateTestQuestion(t, env.db, john.ID, "Exported?", pub)
	testutil.CreateTestQuestion(t, env.db, john.ID, "Not exported?", pub)

	form := url.Values{"action": {"export_to_csv"}, "_selected_action": questionIDs(q1)}
	req := adminRequest("POST", "/admin/sample_app/question/", form)
	w := httptest.NewRecorder()

	h.RunAction(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="The Question.csv"` {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one row, got %d lines: %q", len(lines), w.Body.String())
	}
	if header := strings.TrimSpace(lines[0]); header != "ID,question text,pub date,refAuthor,createdDate,updatedDate" {
		t.Errorf("Unexpected header %q", header)
	}
	wantPrefix := strconv.FormatInt(q1.ID, 10) + ",Exported?,01/10/2026 09:15,john,"
	if !strings.HasPrefix(lines[1], wantPrefix) {
		t.Errorf("Expected row to start with %q, got %q", wantPrefix, lines[1])
	}
}

func TestQuestionSave(t *testing.T) {
	env, h := setupQuestionHandler(t)

	john := testutil.CreateTestAuthor(t, env.db, "john")
	johnID := strconv.FormatInt(john.ID, 10)

	tests := []struct {
		name     string
		form     url.Values
		status   int
		contains []string
	}{
		{
			name:     "missing author",
			form:     url.Values{"question_text": {"Why?"}, "pub_date": {"2026-10-01T10:00"}},
			status:   http.StatusOK,
			contains: []string{"This field is required."},
		},
		{
			name:     "unknown author",
			form:     url.Values{"question_text": {"Why?"}, "pub_date": {"2026-10-01T10:00"}, "refAuthor": {"999"}},
			status:   http.StatusOK,
			contains: []string{"Select a valid choice. That choice is not one of the available choices.", `value="999"`},
		},
		{
			name:     "garbage author",
			form:     url.Values{"question_text": {"Why?"}, "pub_date": {"2026-10-01T10:00"}, "refAuthor": {"abc"}},
			status:   http.StatusOK,
			contains: []string{"Select a valid choice.", `value="abc"`},
		},
		{
			name:     "bad date",
			form:     url.Values{"question_text": {"Why?"}, "pub_date": {"yesterday"}, "refAuthor": {johnID}},
			status:   http.StatusOK,
			contains: []string{"Enter a valid date/time.", `value="yesterday"`},
		},
		{
			name:   "valid",
			form:   url.Values{"question_text": {"Why?"}, "pub_date": {"2026-10-01T10:00"}, "refAuthor": {johnID}},
			status: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := adminRequest("POST", "/admin/sample_app/question/add/", tt.form)
			w := httptest.NewRecorder()

			h.AddView(w, req)

			testutil.AssertStatus(t, w, tt.status)
			testutil.AssertContains(t, w, tt.contains...)
			if tt.status == http.StatusFound {
				assertFlash(t, w, middleware.LevelSuccess, "The Question “Why?” was added successfully.")
			}
		})
	}

	n, err := env.store.CountQuestions(context.Background())
	if err != nil {
		t.Fatalf("CountQuestions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected only the valid question saved, got %d", n)
	}
}

func TestQuestionAddViewPrefillsAuthor(t *testing.T) {
	env, h := setupQuestionHandler(t)
	john := testutil.CreateTestAuthor(t, env.db, "john")
	id := strconv.FormatInt(john.ID, 10)

	req := adminRequest("GET", "/admin/sample_app/question/add/?refAuthor="+id, nil)
	w := httptest.NewRecorder()

	h.AddView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w,
		"Add The Question",
		"Question information",
		"The author",
		"collapse collapsed",
		`name="refAuthor" id="id_refAuthor" value="`+id+`"`,
		"/admin/sample_app/author/?_popup=1",
	)
}

func TestQuestionChangeView(t *testing.T) {
	env, h := setupQuestionHandler(t)
	john := testutil.CreateTestAuthor(t, env.db, "john")
	q := testutil.CreateTestQuestion(t, env.db, john.ID, "Editable?", time.Date(2026, 5, 6, 7, 8, 0, 0, time.UTC))
	id := strconv.FormatInt(q.ID, 10)

	req := adminRequest("GET", "/admin/sample_app/question/"+id+"/change/", nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.ChangeView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "Change The Question", `value="Editable?"`, `value="2026-05-06T07:08"`,
		"<strong>john</strong>", "/admin/sample_app/question/"+id+"/delete/")

	form := url.Values{
		"question_text": {"Edited?"},
		"pub_date":      {"2026-05-06T07:08"},
		"refAuthor":     {strconv.FormatInt(john.ID, 10)},
		"_continue":     {"1"},
	}
	req = adminRequest("POST", "/admin/sample_app/question/"+id+"/change/", form)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.ChangeView(w, req)

	testutil.AssertRedirect(t, w, "/admin/sample_app/question/"+id+"/change/")
	assertFlash(t, w, middleware.LevelSuccess,
		"The Question “Edited?” was changed successfully. You may edit it again below.")
}
