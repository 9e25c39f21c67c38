// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Audience Choice API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health
	GET /         - Banner; only the exact root path, anything else is 404

Voting (public):

	GET  /api/settings      - Budget and access code policy
	GET  /api/founders      - Candidates in server order
	POST /api/validate-code - Check a code without using it
	POST /api/submit-vote   - Record a vote, consuming the code

Leaderboard (public):

	GET /api/results - Live tallies

Organizer (requires X-Admin-Key):

	POST   /api/founders                - Create founder
	PUT    /api/founders/{id}           - Update founder
	DELETE /api/founders/{id}           - Delete founder
	GET    /api/access-codes            - List codes with stats
	GET    /api/votes                   - List ballots with allocations
	POST   /api/access-codes/generate   - Generate 1-500 codes
	DELETE /api/access-codes/{code}     - Delete an unused code
	DELETE /api/reset-votes             - Delete all votes

# Handler Initialization

The router creates handler instances with dependency injection:

	founderHandler := handlers.NewFounderHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	codeHandler := handlers.NewCodeHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
