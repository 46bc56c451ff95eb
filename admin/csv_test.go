// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"bytes"
	"encoding/csv"
	"net/http/httptest"
	"testing"
	"time"
)

type csvRow struct {
	id      int64
	text    string
	pubDate time.Time
}

var csvColumns = []Column[csvRow]{
	{Header: "ID", Value: func(r csvRow) any { return r.id }},
	{Header: "question text", Value: func(r csvRow) any { return r.text }},
	{Header: "date published", Value: func(r csvRow) any { return r.pubDate }},
}

func TestWriteCSV(t *testing.T) {
	rows := []csvRow{
		{id: 1, text: "What, now?", pubDate: time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, csvColumns, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d records", len(records))
	}
	if records[0][0] != "ID" || records[0][2] != "date published" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][0] != "1" || records[1][1] != "What, now?" || records[1][2] != "05/03/2024 14:07" {
		t.Errorf("Unexpected row: %v", records[1])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, csvColumns, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if buf.String() != "ID,question text,date published\n" {
		t.Errorf("Expected only the header, got %q", buf.String())
	}
}

func TestFormatCSVValue(t *testing.T) {
	ts := time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)
	var nilTime *time.Time

	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "john", "john"},
		{"int", 42, "42"},
		{"time", ts, "31/12/2023 23:59"},
		{"time pointer", &ts, "31/12/2023 23:59"},
		{"nil time pointer", nilTime, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCSVValue(tc.value); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestExportCSV(t *testing.T) {
	w := httptest.NewRecorder()
	ExportCSV(w, "The Question", csvColumns, []csvRow{{id: 3, text: "Why?"}})

	if w.Header().Get("Content-Type") != "text/csv" {
		t.Errorf("Expected text/csv, got '%s'", w.Header().Get("Content-Type"))
	}
	expected := `attachment; filename="The Question.csv"`
	if got := w.Header().Get("Content-Disposition"); got != expected {
		t.Errorf("Expected disposition '%s', got '%s'", expected, got)
	}
	if w.Body.String() != "ID,question text,date published\n3,Why?,01/01/0001 00:00\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}
