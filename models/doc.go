// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the records, form types and computed values of the
admin site.

# Domain Types

  - Author: name and timestamps, owns questions
  - Question: text, publication date, author reference
  - Choice: text and vote count, belongs to a question
  - AuthorClone: same shape as Author, separate table
  - AdminUser: admin login account
  - ChartPoint: one day of the author chart ({date, y})

Question and Choice carry joined display fields (author name, question text)
filled by list queries so that change lists need no per-row lookups.

# Form Types

Form structs are validated with go-playground/validator:

	if fe := models.Validate(form); fe != nil {
		// re-render the form with fe[field] messages
	}

# Computed Values

	q.HasBeenPublished(time.Now())

is true when the date part of PubDate is before today's date.
*/
package models
