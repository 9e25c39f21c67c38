// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/audience-choice/auth"
	"github.com/danielhkuo/audience-choice/cliparse"
	"github.com/danielhkuo/audience-choice/middleware"
	"github.com/danielhkuo/audience-choice/models"
)

const maxInvestorNameLen = 80

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Settings handles GET /api/settings
func (h *VotingHandler) Settings(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SettingsResponse{
		TotalBudget:       h.cfg.TotalBudget,
		RequireAccessCode: h.cfg.RequireAccessCode,
	})
}

// ValidateCode handles POST /api/validate-code
// Checks that a code exists and is unused. Validation never consumes the code.
func (h *VotingHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateCodeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.AccessCode) == "" {
		middleware.ReasonResponse(w, http.StatusBadRequest, models.ReasonMissingCode, "accessCode is required")
		return
	}

	code, err := auth.NormalizeAccessCode(req.AccessCode)
	if err != nil {
		middleware.ReasonResponse(w, http.StatusNotFound, models.ReasonInvalidCode, "Invalid access code")
		return
	}

	var used bool
	err = h.db.QueryRow(`
		SELECT used FROM access_code WHERE code = $1
	`, code).Scan(&used)

	if err == sql.ErrNoRows {
		middleware.ReasonResponse(w, http.StatusNotFound, models.ReasonInvalidCode, "Invalid access code")
		return
	}
	if err != nil {
		slog.Error("failed to query access code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if used {
		middleware.ReasonResponse(w, http.StatusConflict, models.ReasonAlreadyVoted, "This access code has already been used")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ValidateCodeResponse{
		Valid:   true,
		Message: "Access code is valid",
	})
}

// SubmitVote handles POST /api/submit-vote
// The access code is consumed in the same transaction that records the vote,
// so two concurrent submissions with one code cannot both succeed.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.InvestorName = strings.TrimSpace(req.InvestorName)
	if req.InvestorName == "" {
		middleware.ReasonResponse(w, http.StatusBadRequest, models.ReasonInvalidBallot, "investorName is required")
		return
	}
	if utf8.RuneCountInString(req.InvestorName) > maxInvestorNameLen {
		middleware.ReasonResponse(w, http.StatusBadRequest, models.ReasonInvalidBallot, "investorName must be at most 80 characters")
		return
	}

	if msg := checkAllocations(req.Allocations, h.cfg.TotalBudget); msg != "" {
		middleware.ReasonResponse(w, http.StatusBadRequest, models.ReasonInvalidBallot, msg)
		return
	}

	// Resolve the access code
	var accessCode *string
	if strings.TrimSpace(req.AccessCode) != "" {
		code, err := auth.NormalizeAccessCode(req.AccessCode)
		if err != nil {
			middleware.ReasonResponse(w, http.StatusNotFound, models.ReasonInvalidCode, "Invalid access code")
			return
		}
		accessCode = &code
	} else if h.cfg.RequireAccessCode {
		middleware.ReasonResponse(w, http.StatusForbidden, models.ReasonMissingCode, "An access code is required to vote")
		return
	}

	// Verify all allocations are for known founders
	founders, err := loadFounders(h.db)
	if err != nil {
		slog.Error("failed to load founders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	known := make(map[string]bool, len(founders))
	for _, f := range founders {
		known[f.ID] = true
	}
	for founderID := range req.Allocations {
		if !known[founderID] {
			middleware.ReasonResponse(w, http.StatusBadRequest, models.ReasonInvalidBallot, "Unknown founder: "+founderID)
			return
		}
	}

	voteID := uuid.NewString()
	voteCode, err := auth.GenerateVoteCode()
	if err != nil {
		slog.Error("failed to generate vote code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	userAgent := r.UserAgent()
	now := time.Now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if accessCode != nil {
		result, err := tx.Exec(`
			UPDATE access_code SET used = TRUE, used_at = $1
			WHERE code = $2 AND used = FALSE
		`, now, *accessCode)
		if err != nil {
			slog.Error("failed to consume access code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
			return
		}

		if n, _ := result.RowsAffected(); n == 0 {
			// Either the code does not exist or someone already used it
			var exists bool
			err = tx.QueryRow(`
				SELECT EXISTS(SELECT 1 FROM access_code WHERE code = $1)
			`, *accessCode).Scan(&exists)
			if err != nil {
				slog.Error("failed to query access code", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			if !exists {
				middleware.ReasonResponse(w, http.StatusNotFound, models.ReasonInvalidCode, "Invalid access code")
				return
			}
			middleware.ReasonResponse(w, http.StatusConflict, models.ReasonAlreadyVoted, "This access code has already been used to vote")
			return
		}
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, vote_code, investor_name, access_code, ip_hash, user_agent, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, voteID, voteCode, req.InvestorName, accessCode, ipHash, userAgent, now)
	if err != nil {
		slog.Error("failed to insert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	for founderID, amount := range req.Allocations {
		if amount == 0 {
			continue
		}
		_, err = tx.Exec(`
			INSERT INTO vote_allocation (vote_id, founder_id, amount)
			VALUES ($1, $2, $3)
		`, voteID, founderID, amount)
		if err != nil {
			slog.Error("failed to insert allocation", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save allocations")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	slog.Info("vote submitted", "vote_id", voteID, "investor", req.InvestorName, "with_code", accessCode != nil)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteCode: voteCode,
		Message:  "Vote submitted successfully",
	})
}

// checkAllocations re-checks the budget rules the client enforces.
// Returns a message when the allocations are not a complete, valid ballot.
func checkAllocations(allocations map[string]int64, totalBudget int64) string {
	if len(allocations) == 0 {
		return "allocations cannot be empty"
	}

	var sum int64
	for founderID, amount := range allocations {
		if amount < 0 {
			return "allocation for " + founderID + " must not be negative"
		}
		if amount > totalBudget {
			return fmt.Sprintf("allocation for %s exceeds the budget of %d", founderID, totalBudget)
		}
		sum += amount
	}

	if sum != totalBudget {
		return fmt.Sprintf("allocations must add up to %d, got %d", totalBudget, sum)
	}
	return ""
}
