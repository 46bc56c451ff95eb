// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/sample-admin/db"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Error("HashPassword() returned the clear password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}

	if err := CheckPassword(hash, "s3cret"); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionToken(t *testing.T) {
	tests := []struct {
		name      string
		makeToken func() string
		secret    string
		wantUser  string
		wantErr   bool
	}{
		{
			name: "valid",
			makeToken: func() string {
				tok, _ := NewSessionToken("admin", "secret", time.Hour)
				return tok
			},
			secret:   "secret",
			wantUser: "admin",
		},
		{
			name: "wrong secret",
			makeToken: func() string {
				tok, _ := NewSessionToken("admin", "secret", time.Hour)
				return tok
			},
			secret:  "other",
			wantErr: true,
		},
		{
			name: "expired",
			makeToken: func() string {
				tok, _ := NewSessionToken("admin", "secret", -time.Minute)
				return tok
			},
			secret:  "secret",
			wantErr: true,
		},
		{
			name: "none algorithm",
			makeToken: func() string {
				tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin"})
				s, _ := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
				return s
			},
			secret:  "secret",
			wantErr: true,
		},
		{
			name:      "garbage",
			makeToken: func() string { return "not-a-token" },
			secret:    "secret",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := ParseSessionToken(tt.makeToken(), tt.secret)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSession) {
					t.Errorf("ParseSessionToken() error = %v, want ErrInvalidSession", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSessionToken() error = %v", err)
			}
			if user != tt.wantUser {
				t.Errorf("ParseSessionToken() user = %q, want %q", user, tt.wantUser)
			}
		})
	}
}

func TestSessionToken_Unique(t *testing.T) {
	t1, _ := NewSessionToken("admin", "secret", time.Hour)
	t2, _ := NewSessionToken("admin", "secret", time.Hour)
	if t1 == t2 {
		t.Error("NewSessionToken() produced duplicate tokens")
	}
}

func TestEnsureAdminUserAndAuthenticate(t *testing.T) {
	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := EnsureAdminUser(ctx, conn, "admin", "first"); err != nil {
		t.Fatalf("EnsureAdminUser() error = %v", err)
	}

	u, err := Authenticate(ctx, conn, "admin", "first")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if u.Username != "admin" {
		t.Errorf("Authenticate() username = %q, want admin", u.Username)
	}

	// Second call resets the password instead of inserting a duplicate
	if err := EnsureAdminUser(ctx, conn, "admin", "second"); err != nil {
		t.Fatalf("EnsureAdminUser() reset error = %v", err)
	}
	if _, err := Authenticate(ctx, conn, "admin", "first"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := Authenticate(ctx, conn, "admin", "second"); err != nil {
		t.Errorf("new password error = %v", err)
	}

	var n int
	conn.QueryRow("SELECT COUNT(*) FROM admin_user").Scan(&n)
	if n != 1 {
		t.Errorf("expected 1 admin user, got %d", n)
	}

	if _, err := Authenticate(ctx, conn, "nobody", "first"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}
