// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tags

import (
	"bytes"
	"html/template"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/sample-admin/store"
	"github.com/danielhkuo/sample-admin/testutil"
)

func TestCounters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	john := testutil.CreateTestAuthor(t, db, "john")
	testutil.CreateTestAuthor(t, db, "mary")
	q1 := testutil.CreateTestQuestion(t, db, john.ID, "Why?", time.Now())
	q2 := testutil.CreateTestQuestion(t, db, john.ID, "How?", time.Now())
	testutil.CreateTestChoice(t, db, q1.ID, "Because", 0)
	testutil.CreateTestChoice(t, db, q1.ID, "Dunno", 2)
	testutil.CreateTestChoice(t, db, q2.ID, "Carefully", 1)

	c := New(store.New(db))
	req := httptest.NewRequest("GET", "/admin/", nil)

	if n := c.NumberOfAuthors(req); n != 2 {
		t.Errorf("Expected 2 authors, got %d", n)
	}
	if n := c.NumberOfQuestions(req); n != 2 {
		t.Errorf("Expected 2 questions, got %d", n)
	}
	if n := c.NumberOfChoices(req); n != 3 {
		t.Errorf("Expected 3 choices, got %d", n)
	}
}

func TestCounters_EmptyTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	c := New(store.New(db))
	if n := c.NumberOfAuthors(nil); n != 0 {
		t.Errorf("Expected 0 authors, got %d", n)
	}
}

func TestCounters_ClosedDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	c := New(store.New(db))
	db.Close()

	if n := c.NumberOfChoices(httptest.NewRequest("GET", "/", nil)); n != 0 {
		t.Errorf("Expected failing count to render 0, got %d", n)
	}
}

func TestFuncMap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.CreateTestAuthor(t, db, "john")

	tmpl := template.Must(template.New("sidebar").Funcs(New(store.New(db)).FuncMap()).Parse(
		`{{number_of_authors .}}/{{number_of_questions .}}/{{number_of_choices .}}`))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, httptest.NewRequest("GET", "/admin/", nil)); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if buf.String() != "1/0/0" {
		t.Errorf("Expected '1/0/0', got '%s'", buf.String())
	}
}
