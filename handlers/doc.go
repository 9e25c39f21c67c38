// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Audience Choice API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - FounderHandler: Founder listing and admin CRUD
  - VotingHandler: Settings, access code validation, vote submission
  - CodeHandler: Access code generation, listing, deletion
  - ResultsHandler: Live results and vote reset

Handlers are created via constructor functions that accept *sql.DB and Config:

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Voting Flow

A voter arrives with an access code, checks it, then submits one ballot:

	POST /api/validate-code → ValidateCode (never consumes the code)
	POST /api/submit-vote   → SubmitVote (consumes the code, returns voteCode)

SubmitVote re-checks every ballot rule: a known founder for every
allocation, no negative amounts, and a total equal to the configured budget.
The code is marked used in the same transaction as the vote insert.

Failures carry a machine-readable reason alongside the message:

	already_voted, invalid_code, missing_code, invalid_ballot

# Results

	rankings, totalVotes, err := ComputeResults(db)

Founders are ranked by total allocated, descending. Ties keep server order
(created_at, id).

# Admin

Founder CRUD, code management and DELETE /api/reset-votes require the
X-Admin-Key header (see middleware.RequireAdmin).
*/
package handlers
