// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package templates embeds the admin page templates and renders them.

Every page is parsed over base.html, which draws the header, the app list
sidebar with the record counters, and the flash messages. Pages define a
"content" template and optionally a "head" template.

	renderer, err := templates.New(tags.New(st).FuncMap())
	renderer.Render(w, http.StatusOK, templates.ChangeList, page)

# Template Functions

	intcomma      1234 -> "1,234"
	naturaltime   time -> "3 days ago"
	displaydate   time -> "Jan. 2, 2006, 15:04"

Page data must embed admin.Context.
*/
package templates
