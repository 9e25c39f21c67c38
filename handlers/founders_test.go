// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/audience-choice/models"
	"github.com/danielhkuo/audience-choice/testutil"
)

func TestCreateFounder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFounderHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.Founder)
	}{
		{
			name: "valid founder",
			requestBody: models.FounderRequest{
				Name:        "  Kevin Sexton ",
				Company:     "Sexton Labs",
				Logo:        "/uploads/logo.png",
				Description: "Robotics for farms",
				Color:       "from-emerald-500 to-teal-600",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Founder) {
				if resp.ID == "" {
					t.Error("Expected non-empty id")
				}
				if resp.Name != "Kevin Sexton" {
					t.Errorf("Expected trimmed name, got %q", resp.Name)
				}

				var company string
				err := db.QueryRow(`SELECT company FROM founder WHERE id = $1`, resp.ID).Scan(&company)
				if err != nil {
					t.Fatalf("Failed to query founder: %v", err)
				}
				if company != "Sexton Labs" {
					t.Errorf("Expected company 'Sexton Labs', got %q", company)
				}
			},
		},
		{
			name:           "missing name",
			requestBody:    models.FounderRequest{Company: "Acme"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing company",
			requestBody:    models.FounderRequest{Name: "Ada"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name too long",
			requestBody:    models.FounderRequest{Name: strings.Repeat("a", 101), Company: "Acme"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-ASCII name at the limit",
			requestBody:    models.FounderRequest{Name: strings.Repeat("ø", 100), Company: "Søren Ærø ApS", Description: strings.Repeat("ü", 2000)},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "non-ASCII name over the limit",
			requestBody:    models.FounderRequest{Name: strings.Repeat("ø", 101), Company: "Acme"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/founders", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateFounder(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.Founder
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestListFoundersServerOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFounderHandler(db, cfg)

	base := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	first := testutil.CreateTestFounder(t, db, "First", base)
	third := testutil.CreateTestFounder(t, db, "Third", base.Add(2*time.Minute))
	second := testutil.CreateTestFounder(t, db, "Second", base.Add(time.Minute))

	req := httptest.NewRequest("GET", "/api/founders", nil)
	w := httptest.NewRecorder()
	handler.ListFounders(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var founders []models.Founder
	testutil.AssertJSON(t, w, &founders)

	want := []string{first, second, third}
	if len(founders) != len(want) {
		t.Fatalf("Expected %d founders, got %d", len(want), len(founders))
	}
	for i, id := range want {
		if founders[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s (%s)", i, id, founders[i].ID, founders[i].Name)
		}
	}
}

func TestListFoundersEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewFounderHandler(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/api/founders", nil)
	w := httptest.NewRecorder()
	handler.ListFounders(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", w.Body.String())
	}
}

func TestUpdateFounder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewFounderHandler(db, testutil.GetTestConfig())

	founderID := testutil.CreateTestFounder(t, db, "Ada", time.Now().UTC())

	t.Run("updates fields", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/founders/"+founderID, models.FounderRequest{
			Name:    "Ada Lovelace",
			Company: "Analytical Engines",
			Color:   "from-blue-500 to-cyan-600",
		}, nil)
		req.SetPathValue("id", founderID)
		w := httptest.NewRecorder()

		handler.UpdateFounder(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Founder
		testutil.AssertJSON(t, w, &resp)
		if resp.ID != founderID || resp.Name != "Ada Lovelace" || resp.Company != "Analytical Engines" {
			t.Errorf("Unexpected founder after update: %+v", resp)
		}
	})

	t.Run("unknown founder", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/founders/missing", models.FounderRequest{
			Name:    "Nobody",
			Company: "Nowhere",
		}, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.UpdateFounder(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/founders/"+founderID, models.FounderRequest{Name: "Ada"}, nil)
		req.SetPathValue("id", founderID)
		w := httptest.NewRecorder()

		handler.UpdateFounder(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestDeleteFounder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewFounderHandler(db, testutil.GetTestConfig())

	founderID := testutil.CreateTestFounder(t, db, "Ada", time.Now().UTC())
	other := testutil.CreateTestFounder(t, db, "Grace", time.Now().UTC())
	testutil.CreateTestVote(t, db, "BoldAngel123", map[string]int64{founderID: 20000, other: 30000})

	req := httptest.NewRequest("DELETE", "/api/founders/"+founderID, nil)
	req.SetPathValue("id", founderID)
	w := httptest.NewRecorder()

	handler.DeleteFounder(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	// Allocations cascade with the founder
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote_allocation WHERE founder_id = $1`, founderID).Scan(&count); err != nil {
		t.Fatalf("Failed to count allocations: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected allocations to be deleted, found %d", count)
	}

	// Deleting again is a 404
	w = httptest.NewRecorder()
	handler.DeleteFounder(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
