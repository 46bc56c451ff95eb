// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing from CLI flags and environment.

# Usage

	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

# Configuration Priority

Values are resolved in this order:

 1. CLI flags (highest priority)
 2. Environment variables (including ones loaded from .env)
 3. Default values (lowest priority)

# Available Options

	Flag              Env Variable     Default   Description
	-p                PORT             3318      Server port
	-d                DATABASE_URL     required  Database connection string
	-t                DATABASE_TYPE    sqlite    sqlite or postgres
	-session-secret   SESSION_SECRET   required  Admin session signing secret
	-admin-user       ADMIN_USERNAME   admin     Admin account name
	-admin-password   ADMIN_PASSWORD   none      Creates or resets the admin account
	-seed             -                0         Create N fake chains and exit
	-sort-models      -                false     Apply the app list rank mapping

# Security Note

Secrets should be provided via environment variables in production.
CLI flags are supported for development convenience but may be visible
in process listings.
*/
package cliparse
