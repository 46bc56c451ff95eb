// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// sqliteParams are appended to SQLite DSNs that do not set them.
// Foreign keys are off by default in SQLite, and the sqlite time format
// keeps TIMESTAMP columns comparable as text.
var sqliteParams = []string{"_pragma=foreign_keys(1)", "_time_format=sqlite"}

// Open opens and pings a database of the given type.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
		url = sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A SQLite database is a single file (or a single in-memory instance);
	// one connection avoids SQLITE_BUSY and keeps :memory: consistent.
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	for _, p := range sqliteParams {
		key := p[:strings.IndexByte(p, '=')+1]
		if strings.Contains(url, key) {
			continue
		}
		if strings.Contains(url, "?") {
			url += "&" + p
		} else {
			url += "?" + p
		}
	}
	return url
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	schema := sqliteSchema
	if dbType == TypePostgres {
		schema = postgresSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Authors
CREATE TABLE IF NOT EXISTS author (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(200) NOT NULL,
    created_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_author_name ON author(name);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id BIGSERIAL PRIMARY KEY,
    question_text VARCHAR(200) NOT NULL,
    pub_date TIMESTAMPTZ NOT NULL,
    ref_author_id BIGINT NOT NULL REFERENCES author(id) ON DELETE CASCADE,
    created_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_question_ref_author_id ON question(ref_author_id);
CREATE INDEX IF NOT EXISTS idx_question_pub_date ON question(pub_date);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id BIGSERIAL PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    choice_text VARCHAR(200) NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    created_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);
CREATE INDEX IF NOT EXISTS idx_choice_created_date ON choice(created_date);

-- Author clones
CREATE TABLE IF NOT EXISTS author_clone (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(200) NOT NULL,
    created_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Admin users
CREATE TABLE IF NOT EXISTS admin_user (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(150) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const sqliteSchema = `
-- Authors
CREATE TABLE IF NOT EXISTS author (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(200) NOT NULL,
    created_date TIMESTAMP NOT NULL,
    updated_date TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_author_name ON author(name);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_text VARCHAR(200) NOT NULL,
    pub_date TIMESTAMP NOT NULL,
    ref_author_id INTEGER NOT NULL REFERENCES author(id) ON DELETE CASCADE,
    created_date TIMESTAMP NOT NULL,
    updated_date TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_ref_author_id ON question(ref_author_id);
CREATE INDEX IF NOT EXISTS idx_question_pub_date ON question(pub_date);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    choice_text VARCHAR(200) NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    created_date TIMESTAMP NOT NULL,
    updated_date TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);
CREATE INDEX IF NOT EXISTS idx_choice_created_date ON choice(created_date);

-- Author clones
CREATE TABLE IF NOT EXISTS author_clone (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(200) NOT NULL,
    created_date TIMESTAMP NOT NULL,
    updated_date TIMESTAMP NOT NULL
);

-- Admin users
CREATE TABLE IF NOT EXISTS admin_user (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username VARCHAR(150) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_date TIMESTAMP NOT NULL
);
`
