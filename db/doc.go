// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Opening

Open selects the driver from the database type and pings the server:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:admin.db")

SQLite DSNs get foreign keys enabled and the sqlite time format unless
they already set those parameters.

# Schema Creation

CreateSchema initializes all required tables for the given type:

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - author: name and timestamps
  - question: question text, publication date, author reference
  - choice: choice text and vote count per question
  - author_clone: same shape as author, independent table
  - admin_user: admin login accounts

# Relationships

	author 1──* question
	question 1──* choice

All foreign keys use ON DELETE CASCADE.
*/
package db
