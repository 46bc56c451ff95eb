// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /admin/", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request id is taken from X-Request-ID when
present, generated otherwise, and echoed on the response.

# Admin Sessions

Protect admin pages with a signed session cookie:

	protect := middleware.RequireAdmin(cfg.SessionSecret, "/admin/login/")
	mux.HandleFunc("GET /admin/", middleware.WithLogging(protect(site.Index)))

Requests without a valid session are redirected to the login page with a
next parameter. Handlers read the signed in username with UserFromContext.
SetSession and ClearSession write the cookie on login and logout.

# Flash Messages

Messages survive one redirect in a cookie:

	middleware.AddMessage(w, r, middleware.LevelSuccess, "Changed to published on 2 questions")
	http.Redirect(w, r, back, http.StatusFound)

The next page consumes them with PopMessages.

# Errors

	middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used when logging failed logins.
*/
package middleware
