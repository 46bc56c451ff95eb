// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the sample_app admin.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints. It fails
only when the embedded templates do not parse:

	mux, err := router.NewRouter(db, cfg)

# Endpoints

Public:

	GET  /health        - Health check
	GET  /              - Redirect to /admin/
	GET  /admin/login/  - Login form
	POST /admin/login/  - Log in and redirect to next

Site (requires a session):

	POST /admin/logout/      - Log out
	GET  /admin/             - Index listing every app
	GET  /admin/my_view/     - Custom view
	GET  /admin/{app}/       - Index of one app

Per model, under /admin/sample_app/{model}/ for author, question, choice
and authorclone:

	GET      /                - Change list
	POST     /                - Run a bulk action
	GET/POST /add/            - Add form
	GET/POST /{id}/change/    - Change form
	GET/POST /{id}/delete/    - Delete confirmation and delete

Read-only:

	GET  /admin/auth/user/   - Admin accounts

Every route except /health and / is wrapped in middleware.WithLogging.
Anonymous requests to session routes are redirected to the login page.
*/
package router
