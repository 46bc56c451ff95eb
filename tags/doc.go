// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tags provides the counter functions available to every admin page
template.

	counters := tags.New(store.New(db))
	renderer, err := templates.New(counters.FuncMap())

Templates call them with the current request:

	{{number_of_authors .Request}}
	{{number_of_questions .Request}}
	{{number_of_choices .Request}}

Each returns the total row count of its table.
*/
package tags
