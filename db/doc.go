// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open picks the driver from the config (modernc.org/sqlite by default,
github.com/lib/pq for postgres) and pings the database:

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - founder: Candidates voters allocate budget to
  - access_code: Single-use codes handed out as QR codes
  - vote: One row per submitted vote, at most one per access code
  - vote_allocation: Amount per founder for a vote

# Relationships

	vote 1──* vote_allocation *──1 founder
	access_code 1──0..1 vote

Allocation foreign keys use ON DELETE CASCADE.
*/
package db
