// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the sample_app admin server.

The server is an administration site over a small polls schema: authors,
their questions and the choices of each question, plus an independent
author clone table. Admins log in, browse filtered change lists, edit
records through forms and run bulk actions such as publishing questions or
exporting them to CSV.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first:

	DATABASE_URL=admin.db SESSION_SECRET=... ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -d admin.db -session-secret ... -admin-password ...

Fill the database with fake data and exit:

	go run . -d admin.db -session-secret ... -seed 100

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file (or :memory:) or PostgreSQL connection string
  - SESSION_SECRET (--session-secret): Secret for session token signing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - ADMIN_USERNAME (--admin-user): Admin login (default: admin)
  - ADMIN_PASSWORD (--admin-password): Creates the admin or resets its password
  - --seed N: Create N fake author/question/choice chains and exit
  - --sort-models: Order the app list by the declared model ranks

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: Model admins and site pages
  - admin: Site registry, change list, filter, action and form building blocks
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, sessions and flash messages
  - templates: Embedded html/template pages
  - tags: Row counters for the sidebar
  - store: SQL queries
  - models: Records and form validation
  - auth: Password hashing and session tokens
  - seed: Fake data recipes
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
