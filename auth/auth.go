// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/sample-admin/models"
	"github.com/danielhkuo/sample-admin/store"
)

// SessionCookieName is the cookie carrying the admin session token
const SessionCookieName = "sessionid"

// SessionTTL is how long an admin session stays valid
const SessionTTL = 14 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid session")
)

// HashPassword returns the bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password with a bcrypt hash
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// EnsureAdminUser creates the admin account, or resets its password when it
// already exists
func EnsureAdminUser(ctx context.Context, db *sql.DB, username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE admin_user SET password_hash = $1 WHERE username = $2
	`, hash, username)
	if err != nil {
		return fmt.Errorf("failed to update admin user: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO admin_user (username, password_hash, created_date)
		VALUES ($1, $2, $3)
	`, username, hash, store.Timestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}
	return nil
}

// Authenticate checks credentials against the admin_user table
func Authenticate(ctx context.Context, db *sql.DB, username, password string) (models.AdminUser, error) {
	var u models.AdminUser
	err := db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_date
		FROM admin_user
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("failed to query admin user: %w", err)
	}

	if err := CheckPassword(u.PasswordHash, password); err != nil {
		return models.AdminUser{}, err
	}
	return u, nil
}

// NewSessionToken signs a session token for username
func NewSessionToken(username, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns its username
func ParseSessionToken(tokenString, secret string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
