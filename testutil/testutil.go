// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/sample-admin/auth"
	"github.com/danielhkuo/sample-admin/cliparse"
	"github.com/danielhkuo/sample-admin/db"
	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// Test admin credentials
const (
	TestAdminUsername = "admin"
	TestAdminPassword = "test-password"
)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		AdminUsername: TestAdminUsername,
		AdminPassword: TestAdminPassword,
	}
}

// CreateTestAdmin creates the test admin account and returns a session
// cookie for it
func CreateTestAdmin(t *testing.T, conn *sql.DB, cfg cliparse.Config) *http.Cookie {
	t.Helper()

	if err := auth.EnsureAdminUser(context.Background(), conn, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}

	return SessionCookie(t, cfg)
}

// SessionCookie returns a valid session cookie for the configured admin
func SessionCookie(t *testing.T, cfg cliparse.Config) *http.Cookie {
	t.Helper()

	token, err := auth.NewSessionToken(cfg.AdminUsername, cfg.SessionSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create session token: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

// CreateTestAuthor inserts an author and returns it
func CreateTestAuthor(t *testing.T, conn *sql.DB, name string) models.Author {
	t.Helper()

	a := models.Author{Name: name}
	if err := store.New(conn).CreateAuthor(context.Background(), &a); err != nil {
		t.Fatalf("Failed to create test author: %v", err)
	}
	return a
}

// CreateTestQuestion inserts a question for an author and returns it
func CreateTestQuestion(t *testing.T, conn *sql.DB, authorID int64, text string, pubDate time.Time) models.Question {
	t.Helper()

	q := models.Question{QuestionText: text, PubDate: pubDate, RefAuthorID: authorID}
	if err := store.New(conn).CreateQuestion(context.Background(), &q); err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return q
}

// CreateTestChoice inserts a choice for a question and returns it
func CreateTestChoice(t *testing.T, conn *sql.DB, questionID int64, text string, votes int) models.Choice {
	t.Helper()

	c := models.Choice{QuestionID: questionID, ChoiceText: text, Votes: votes}
	if err := store.New(conn).CreateChoice(context.Background(), &c); err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}
	return c
}

// CreateTestAuthorClone inserts an author clone and returns it
func CreateTestAuthorClone(t *testing.T, conn *sql.DB, name string) models.AuthorClone {
	t.Helper()

	c := models.AuthorClone{Name: name}
	if err := store.New(conn).CreateAuthorClone(context.Background(), &c); err != nil {
		t.Fatalf("Failed to create test author clone: %v", err)
	}
	return c
}

// MakeRequest creates an HTTP test request. A non-nil form is sent as an
// urlencoded body.
func MakeRequest(method, path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertContains checks that the response body contains every substring
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrings {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q. Body: %s", s, body)
		}
	}
}

// AssertRedirect checks for a 302 to the expected location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusFound)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// CookiesFrom returns the cookies set by a response, for follow-up requests
func CookiesFrom(w *httptest.ResponseRecorder) []*http.Cookie {
	return w.Result().Cookies()
}
