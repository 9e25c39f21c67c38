// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are read.
Variables already present in the environment are left alone.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string or SQLite file (default: audience-choice.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Secret required in X-Admin-Key for organizer endpoints (required)
  - IPHashSalt: Secret for hashing voter IPs (default: AdminKey)
  - TotalBudget: Amount every voter must allocate (default: 50000)
  - RequireAccessCode: Reject votes without an access code (default: true)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--admin-key    Admin key
	--ip-salt      IP hash salt
	--budget       Total budget per voter
	--require-code Require access codes

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	ADMIN_KEY           → --admin-key
	IP_HASH_SALT        → --ip-salt
	TOTAL_BUDGET        → --budget
	REQUIRE_ACCESS_CODE → --require-code

CLI flags take precedence over environment variables.
*/
package cliparse
