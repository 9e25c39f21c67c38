// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/audience-choice/cliparse"
	"github.com/danielhkuo/audience-choice/middleware"
	"github.com/danielhkuo/audience-choice/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /api/results
// Results are live: the leaderboard polls this while voting is open
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, totalVotes, err := ComputeResults(h.db)
	if err != nil {
		slog.Error("failed to compute results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results:     results,
		TotalVotes:  totalVotes,
		TotalBudget: h.cfg.TotalBudget,
	})
}

// ListVotes handles GET /api/votes
// Newest ballots first, each with its per-founder allocations
func (h *ResultsHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := loadVotes(h.db)
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListVotesResponse{
		Votes: votes,
		Count: len(votes),
	})
}

// loadVotes reads ballots and allocations in two passes; the vote rows
// must be closed before the allocation query on a single connection
func loadVotes(db *sql.DB) ([]models.Vote, error) {
	rows, err := db.Query(`
		SELECT id, vote_code, investor_name, submitted_at
		FROM vote
		ORDER BY submitted_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}

	votes := []models.Vote{}
	index := map[string]int{}
	for rows.Next() {
		v := models.Vote{Allocations: map[string]int64{}}
		if err := rows.Scan(&v.ID, &v.VoteCode, &v.InvestorName, &v.SubmittedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		index[v.ID] = len(votes)
		votes = append(votes, v)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("read votes: %w", err)
	}

	allocRows, err := db.Query(`SELECT vote_id, founder_id, amount FROM vote_allocation`)
	if err != nil {
		return nil, fmt.Errorf("query allocations: %w", err)
	}
	defer allocRows.Close()

	for allocRows.Next() {
		var voteID, founderID string
		var amount int64
		if err := allocRows.Scan(&voteID, &founderID, &amount); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		if i, ok := index[voteID]; ok {
			votes[i].Allocations[founderID] = amount
		}
	}
	if err := allocRows.Err(); err != nil {
		return nil, fmt.Errorf("read allocations: %w", err)
	}

	return votes, nil
}

// ResetVotes handles DELETE /api/reset-votes
// Deletes every vote and makes used access codes available again
func (h *ResultsHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vote_allocation`); err != nil {
		slog.Error("failed to delete allocations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}

	result, err := tx.Exec(`DELETE FROM vote`)
	if err != nil {
		slog.Error("failed to delete votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}
	deleted, _ := result.RowsAffected()

	result, err = tx.Exec(`UPDATE access_code SET used = FALSE, used_at = NULL WHERE used = TRUE`)
	if err != nil {
		slog.Error("failed to release access codes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}
	released, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}

	slog.Warn("votes reset", "deleted_votes", deleted, "released_codes", released)

	middleware.JSONResponse(w, http.StatusOK, models.ResetVotesResponse{
		DeletedVotes:  deleted,
		ReleasedCodes: released,
	})
}
