package models

import (
	"strings"
	"testing"
	"time"
)

func TestQuestionHasBeenPublished(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"yesterday late evening", time.Date(2026, 10, 13, 23, 59, 0, 0, time.UTC), true},
		{"yesterday same time", now.Add(-24 * time.Hour), true},
		{"last year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"today midnight", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), false},
		{"earlier today", now.Add(-time.Hour), false},
		{"later today", time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC), false},
		{"tomorrow", now.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{PubDate: tt.pubDate}
			if got := q.HasBeenPublished(now); got != tt.want {
				t.Errorf("HasBeenPublished() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuestionHasBeenPublished_UsesNowLocation(t *testing.T) {
	// 23:00 UTC on the 13th is already the 14th in UTC+2
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, loc)
	q := Question{PubDate: time.Date(2026, 10, 13, 23, 0, 0, 0, time.UTC)}

	if q.HasBeenPublished(now) {
		t.Error("expected question published today in local time to be unpublished")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      any
		wantField string
		wantMsg   string
	}{
		{"valid author", AuthorForm{Name: "jane"}, "", ""},
		{"empty author name", AuthorForm{}, "Name", "This field is required."},
		{"long author name", AuthorForm{Name: strings.Repeat("a", 201)}, "Name", "at most 200"},
		{"question without author", QuestionForm{QuestionText: "q", PubDate: time.Now()}, "RefAuthorID", "This field is required."},
		{"question without date", QuestionForm{QuestionText: "q", RefAuthorID: 1}, "PubDate", "This field is required."},
		{"negative votes", ChoiceForm{QuestionID: 1, ChoiceText: "c", Votes: -1}, "Votes", "greater than or equal to 0"},
		{"valid choice", ChoiceForm{QuestionID: 1, ChoiceText: "c"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := Validate(tt.form)
			if tt.wantField == "" {
				if fe != nil {
					t.Fatalf("expected no errors, got %v", fe)
				}
				return
			}
			if !fe.Has(tt.wantField) {
				t.Fatalf("expected error on %s, got %v", tt.wantField, fe)
			}
			if !strings.Contains(fe[tt.wantField][0], tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", fe[tt.wantField][0], tt.wantMsg)
			}
		})
	}
}
