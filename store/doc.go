// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the SQL behind the admin change lists and forms.

	s := store.New(db)
	authors, total, err := s.ListAuthors(ctx, store.AuthorFilter{
		NamePrefix: "j",
		Search:     r.URL.Query().Get("q"),
		Page:       store.Page{Limit: 100},
	})

Fixed statements are plain SQL with $N placeholders, which lib/pq and
modernc sqlite both accept. Filtered lists, counts, bulk updates and deletes
are built with goqu in the postgres or sqlite3 dialect, picked from the
driver of the *sql.DB.

# Filters

Each change list has a filter struct (AuthorFilter, QuestionFilter,
ChoiceFilter, AdminUserFilter). Search strings are split on whitespace; every term must match
one of the searched columns, case-insensitively, with LIKE wildcards escaped.

# Timestamps

Timestamps are written in UTC truncated to microseconds (see Timestamp).
Create methods fill zero created/updated dates from Clock; update methods
always bump updated_date.

# Errors

Single-row lookups return an error wrapping ErrNotFound when the row does
not exist.
*/
package store
