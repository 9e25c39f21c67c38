// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/audience-choice/auth"
	"github.com/danielhkuo/audience-choice/cliparse"
	"github.com/danielhkuo/audience-choice/middleware"
	"github.com/danielhkuo/audience-choice/models"
)

// maxCodeAttempts bounds retries when a generated code collides with an existing one
const maxCodeAttempts = 5

type CodeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCodeHandler(db *sql.DB, cfg cliparse.Config) *CodeHandler {
	return &CodeHandler{db: db, cfg: cfg}
}

// ListCodes handles GET /api/access-codes
// Newest codes first, with used/available counts
func (h *CodeHandler) ListCodes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT code, used, created_at, used_at
		FROM access_code
		ORDER BY created_at DESC, code
	`)
	if err != nil {
		slog.Error("failed to query access codes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	resp := models.ListCodesResponse{Codes: []models.AccessCode{}}
	for rows.Next() {
		var c models.AccessCode
		var usedAt sql.NullTime
		if err := rows.Scan(&c.Code, &c.Used, &c.CreatedAt, &usedAt); err != nil {
			slog.Error("failed to scan access code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if usedAt.Valid {
			t := usedAt.Time
			c.UsedAt = &t
		}

		resp.Stats.Total++
		if c.Used {
			resp.Stats.Used++
		} else {
			resp.Stats.Available++
		}
		resp.Codes = append(resp.Codes, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read access codes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GenerateCodes handles POST /api/access-codes/generate
func (h *CodeHandler) GenerateCodes(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateCodesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Count < models.MinCodesPerBatch || req.Count > models.MaxCodesPerBatch {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("count must be between %d and %d", models.MinCodesPerBatch, models.MaxCodesPerBatch))
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	codes := make([]string, 0, req.Count)
	for len(codes) < req.Count {
		code, err := insertUniqueCode(tx, now)
		if err != nil {
			slog.Error("failed to insert access code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate codes")
			return
		}
		codes = append(codes, code)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate codes")
		return
	}

	slog.Info("access codes generated", "count", len(codes))

	middleware.JSONResponse(w, http.StatusCreated, models.GenerateCodesResponse{Codes: codes})
}

// insertUniqueCode generates and stores one code, retrying on collision
func insertUniqueCode(tx *sql.Tx, createdAt time.Time) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := auth.GenerateAccessCode()
		if err != nil {
			return "", err
		}

		result, err := tx.Exec(`
			INSERT INTO access_code (code, used, created_at)
			VALUES ($1, FALSE, $2)
			ON CONFLICT (code) DO NOTHING
		`, code, createdAt)
		if err != nil {
			return "", err
		}
		if n, _ := result.RowsAffected(); n == 1 {
			return code, nil
		}
	}
	return "", fmt.Errorf("no unique code after %d attempts", maxCodeAttempts)
}

// DeleteCode handles DELETE /api/access-codes/{code}
// Used codes stay as the record of the vote they unlocked
func (h *CodeHandler) DeleteCode(w http.ResponseWriter, r *http.Request) {
	code, err := auth.NormalizeAccessCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Access code not found")
		return
	}

	result, err := h.db.Exec(`
		DELETE FROM access_code WHERE code = $1 AND used = FALSE
	`, code)
	if err != nil {
		slog.Error("failed to delete access code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete code")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		var exists bool
		err = h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM access_code WHERE code = $1)
		`, code).Scan(&exists)
		if err != nil {
			slog.Error("failed to query access code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !exists {
			middleware.ErrorResponse(w, http.StatusNotFound, "Access code not found")
			return
		}
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot delete a code that has already been used")
		return
	}

	slog.Info("access code deleted", "code", code)

	w.WriteHeader(http.StatusNoContent)
}
