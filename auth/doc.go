// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin accounts and session tokens.

# Admin Accounts

Accounts live in the admin_user table with bcrypt password hashes. The
configured account is created (or its password reset) at start:

	err := auth.EnsureAdminUser(ctx, db, "admin", password)

Login checks credentials:

	user, err := auth.Authenticate(ctx, db, username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// show the login form again
	}

# Sessions

Sessions are HS256 JWTs stored in the "sessionid" cookie. The subject is the
username and every token carries a random ID:

	token, err := auth.NewSessionToken("admin", secret, auth.SessionTTL)
	username, err := auth.ParseSessionToken(token, secret)

Tokens signed with another secret or algorithm, or past their expiry, return
ErrInvalidSession.

# Security Properties

  - Passwords are never stored or logged in clear text
  - Tokens are verified with the configured secret only
  - Credential errors do not reveal whether the username exists
*/
package auth
