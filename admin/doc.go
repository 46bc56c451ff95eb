// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package admin holds the building blocks shared by the model admin pages.

# Site

A Site is the registry of models shown on the index page and in the
sidebar. It carries the branding strings and the optional section ranks:

	site := admin.NewSite()
	site.Register(admin.Registration{AppLabel: "sample_app", Slug: "question", ...})
	apps := site.AppList()

Apps are sorted by name. Models keep their registration order unless
SortModels is set, in which case ModelOrdering ranks them.

# Change Lists

ListColumn, Rows and Headers turn records into escaped table cells.
ListFilter renders sidebar filters bound to one query parameter, and
Paginator splits results over the zero-based p parameter.

# Actions

Bulk actions are posted from the change list:

	admin.Dispatch(w, r, admin.Actions{
		{Name: "make_published", Description: "Mark selected questions as published", Run: h.makePublished},
	})

Dispatch warns and redirects back when no action or no item was chosen.

# CSV Export

	admin.ExportCSV(w, "The Question", columns, questions)

Answers with a "<verbose name>.csv" attachment. Dates use DD/MM/YYYY HH:MM.
*/
package admin
