// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Audience Choice API server.

Audience Choice runs the live "investor" vote at a pitch event: attendees
scan a QR code holding a single-use access code, split a fixed virtual
budget across the founders on stage, and submit one vote. Organizers
manage founders and codes and watch a live leaderboard.

# Starting the Server

SQLite is used by default, so only the admin key is required:

	ADMIN_KEY=change-me go run .

Or with PostgreSQL and flags:

	go run . -p 3318 -t postgres -d "postgres://..." --admin-key change-me

# Configuration

Required settings:

  - ADMIN_KEY (--admin-key): Secret for organizer endpoints

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite file
  - TOTAL_BUDGET (--budget): Budget per voter (default: 50000)
  - REQUIRE_ACCESS_CODE (--require-code): default true
  - IP_HASH_SALT (--ip-salt): default ADMIN_KEY

Values may also come from a .env file.

# Architecture

  - handlers: HTTP request handlers (founders, codes, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin gate, JSON helpers
  - models: Request/response types shared with the voter client
  - auth: Code generation and admin key checks
  - db: Connection and schema creation
  - cliparse: Configuration parsing

The voter side lives in ballot, session, leaderboard, and client, and is
driven from the terminal by cmd/ballot.
*/
package main
