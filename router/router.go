// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/audience-choice/cliparse"
	"github.com/danielhkuo/audience-choice/handlers"
	"github.com/danielhkuo/audience-choice/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	founderHandler := handlers.NewFounderHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	codeHandler := handlers.NewCodeHandler(db, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting operations (public)
	mux.HandleFunc("GET /api/settings", middleware.WithLogging(votingHandler.Settings))
	mux.HandleFunc("GET /api/founders", middleware.WithLogging(founderHandler.ListFounders))
	mux.HandleFunc("POST /api/validate-code", middleware.WithLogging(votingHandler.ValidateCode))
	mux.HandleFunc("POST /api/submit-vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Live leaderboard (public)
	mux.HandleFunc("GET /api/results", middleware.WithLogging(resultsHandler.GetResults))

	// Founder management (admin)
	mux.HandleFunc("POST /api/founders", admin(founderHandler.CreateFounder))
	mux.HandleFunc("PUT /api/founders/{id}", admin(founderHandler.UpdateFounder))
	mux.HandleFunc("DELETE /api/founders/{id}", admin(founderHandler.DeleteFounder))

	// Access codes and votes (admin)
	mux.HandleFunc("GET /api/access-codes", admin(codeHandler.ListCodes))
	mux.HandleFunc("POST /api/access-codes/generate", admin(codeHandler.GenerateCodes))
	mux.HandleFunc("DELETE /api/access-codes/{code}", admin(codeHandler.DeleteCode))
	mux.HandleFunc("GET /api/votes", admin(resultsHandler.ListVotes))
	mux.HandleFunc("DELETE /api/reset-votes", admin(resultsHandler.ResetVotes))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audience-choice API v1"))
	})

	return mux
}
