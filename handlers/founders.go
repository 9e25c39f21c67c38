// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/audience-choice/cliparse"
	"github.com/danielhkuo/audience-choice/middleware"
	"github.com/danielhkuo/audience-choice/models"
)

// Field limits for founder records
const (
	maxFounderNameLen        = 100
	maxFounderDescriptionLen = 2000
)

type FounderHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFounderHandler(db *sql.DB, cfg cliparse.Config) *FounderHandler {
	return &FounderHandler{db: db, cfg: cfg}
}

// ListFounders handles GET /api/founders
// Founders are returned in server order (creation time)
func (h *FounderHandler) ListFounders(w http.ResponseWriter, r *http.Request) {
	founders, err := loadFounders(h.db)
	if err != nil {
		slog.Error("failed to load founders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, founders)
}

// CreateFounder handles POST /api/founders
func (h *FounderHandler) CreateFounder(w http.ResponseWriter, r *http.Request) {
	var req models.FounderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateFounder(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	founder := models.Founder{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Company:     req.Company,
		Logo:        req.Logo,
		Profile:     req.Profile,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := h.db.Exec(`
		INSERT INTO founder (id, name, company, logo, profile, description, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, founder.ID, founder.Name, founder.Company, founder.Logo, founder.Profile,
		founder.Description, founder.Color, founder.CreatedAt)

	if err != nil {
		slog.Error("failed to insert founder", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create founder")
		return
	}

	slog.Info("founder created", "founder_id", founder.ID, "company", founder.Company)

	middleware.JSONResponse(w, http.StatusCreated, founder)
}

// UpdateFounder handles PUT /api/founders/{id}
func (h *FounderHandler) UpdateFounder(w http.ResponseWriter, r *http.Request) {
	founderID := r.PathValue("id")
	if founderID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "founder id is required")
		return
	}

	var req models.FounderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateFounder(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.db.Exec(`
		UPDATE founder
		SET name = $1, company = $2, logo = $3, profile = $4, description = $5, color = $6
		WHERE id = $7
	`, req.Name, req.Company, req.Logo, req.Profile, req.Description, req.Color, founderID)

	if err != nil {
		slog.Error("failed to update founder", "error", err, "founder_id", founderID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update founder")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Founder not found")
		return
	}

	var founder models.Founder
	err = h.db.QueryRow(`
		SELECT id, name, company, logo, profile, description, color, created_at
		FROM founder WHERE id = $1
	`, founderID).Scan(
		&founder.ID, &founder.Name, &founder.Company, &founder.Logo,
		&founder.Profile, &founder.Description, &founder.Color, &founder.CreatedAt,
	)
	if err != nil {
		slog.Error("failed to reload founder", "error", err, "founder_id", founderID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("founder updated", "founder_id", founderID)

	middleware.JSONResponse(w, http.StatusOK, founder)
}

// DeleteFounder handles DELETE /api/founders/{id}
// Allocations to the founder are removed with it
func (h *FounderHandler) DeleteFounder(w http.ResponseWriter, r *http.Request) {
	founderID := r.PathValue("id")
	if founderID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "founder id is required")
		return
	}

	result, err := h.db.Exec(`DELETE FROM founder WHERE id = $1`, founderID)
	if err != nil {
		slog.Error("failed to delete founder", "error", err, "founder_id", founderID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete founder")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Founder not found")
		return
	}

	slog.Info("founder deleted", "founder_id", founderID)

	w.WriteHeader(http.StatusNoContent)
}

// validateFounder trims the request in place and returns a message when it is invalid
func validateFounder(req *models.FounderRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Company = strings.TrimSpace(req.Company)
	req.Logo = strings.TrimSpace(req.Logo)
	req.Profile = strings.TrimSpace(req.Profile)
	req.Description = strings.TrimSpace(req.Description)
	req.Color = strings.TrimSpace(req.Color)

	switch {
	case req.Name == "":
		return "name is required"
	case req.Company == "":
		return "company is required"
	case utf8.RuneCountInString(req.Name) > maxFounderNameLen:
		return "name must be at most 100 characters"
	case utf8.RuneCountInString(req.Company) > maxFounderNameLen:
		return "company must be at most 100 characters"
	case utf8.RuneCountInString(req.Description) > maxFounderDescriptionLen:
		return "description must be at most 2000 characters"
	}
	return ""
}

// loadFounders returns all founders in server order
func loadFounders(db *sql.DB) ([]models.Founder, error) {
	rows, err := db.Query(`
		SELECT id, name, company, logo, profile, description, color, created_at
		FROM founder
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	founders := []models.Founder{}
	for rows.Next() {
		var f models.Founder
		if err := rows.Scan(&f.ID, &f.Name, &f.Company, &f.Logo, &f.Profile,
			&f.Description, &f.Color, &f.CreatedAt); err != nil {
			return nil, err
		}
		founders = append(founders, f)
	}
	return founders, rows.Err()
}
