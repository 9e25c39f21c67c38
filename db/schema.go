// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the subset shared by SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table. Used by tests and the reset tooling.
func DropSchema(db *sql.DB) error {
	_, err := db.Exec(`
		DROP TABLE IF EXISTS vote_allocation;
		DROP TABLE IF EXISTS vote;
		DROP TABLE IF EXISTS access_code;
		DROP TABLE IF EXISTS founder;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

const schema = `
-- Founders (candidates)
CREATE TABLE IF NOT EXISTS founder (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    company TEXT NOT NULL,
    logo TEXT NOT NULL DEFAULT '',
    profile TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_founder_created_at ON founder(created_at);

-- Access codes
CREATE TABLE IF NOT EXISTS access_code (
    code TEXT PRIMARY KEY,
    used BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    used_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_access_code_used ON access_code(used);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    vote_code TEXT NOT NULL UNIQUE,
    investor_name TEXT NOT NULL,
    access_code TEXT UNIQUE,
    ip_hash TEXT,
    user_agent TEXT,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Allocations
CREATE TABLE IF NOT EXISTS vote_allocation (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    founder_id TEXT NOT NULL REFERENCES founder(id) ON DELETE CASCADE,
    amount BIGINT NOT NULL CHECK (amount >= 0),
    PRIMARY KEY (vote_id, founder_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_allocation_founder_id ON vote_allocation(founder_id);
`
