// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"
)

// CSVDateFormat is DD/MM/YYYY HH:MM
const CSVDateFormat = "02/01/2006 15:04"

// Column is one exported field: its verbose name and how to read it.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// FormatCSVValue renders one cell. Times use CSVDateFormat.
func FormatCSVValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(CSVDateFormat)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(CSVDateFormat)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// WriteCSV writes a header row of column names followed by one row per item.
func WriteCSV[T any](w io.Writer, cols []Column[T], items []T) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(cols))
	for _, item := range items {
		for i, c := range cols {
			record[i] = FormatCSVValue(c.Value(item))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV answers with a CSV attachment named after the model.
func ExportCSV[T any](w http.ResponseWriter, verboseName string, cols []Column[T], items []T) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": verboseName + ".csv"}))
	w.WriteHeader(http.StatusOK)

	if err := WriteCSV(w, cols, items); err != nil {
		slog.Error("failed to write CSV export", "model", verboseName, "error", err)
	}
}
