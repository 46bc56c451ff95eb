// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielhkuo/sample-admin/auth"
)

type contextKey string

const userKey contextKey = "admin_user"

// WithUser returns a context carrying the admin username
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// UserFromContext returns the admin username, or "" for anonymous requests
func UserFromContext(ctx context.Context) string {
	u, _ := ctx.Value(userKey).(string)
	return u
}

// RequireAdmin lets requests with a valid session through and redirects
// the rest to the login page with a next parameter
func RequireAdmin(secret, loginURL string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err == nil {
				if username, err := auth.ParseSessionToken(cookie.Value, secret); err == nil {
					next(w, r.WithContext(WithUser(r.Context(), username)))
					return
				}
			}

			http.Redirect(w, r, loginURL+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		}
	}
}

// SetSession stores a session token in the session cookie
func SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes the session cookie
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
