// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the sample_app admin.

# Handler Types

Each registered model has a handler embedding modelAdmin and satisfying
ModelAdmin:

  - AuthorHandler: authors whose name starts with "j", with the daily
    chart and the stacked question inline
  - QuestionHandler: published and author filters plus the
    make_published, export_to_csv and make_published_custom actions
  - ChoiceHandler: choices filtered by question and question author
  - AuthorCloneHandler: a plain author list without restrictions

SiteHandler serves the index, the per-app index, login, logout and my_view.

Handlers are created via constructor functions sharing one store, site and
renderer:

	site := handlers.NewSite(cfg.SortModels)
	authors := handlers.NewAuthorHandler(st, site, pages)

# Change Lists

GET on a change list renders one page of rows. POST runs the selected bulk
action through admin.Dispatch. delete_selected and make_published_custom
answer with a confirmation page first; the confirmed post carries post=yes
or apply.

# Forms

Add and change pages answer both GET and POST. Invalid posts re-render the
form with field errors and the raw input. Valid posts flash a success
message and redirect according to the submit button:

	_continue    → change page of the saved object
	_addanother  → empty add page
	otherwise    → change list

Objects that do not exist, or authors hidden by the "j" rule, redirect to
the index with a warning.
*/
package handlers
