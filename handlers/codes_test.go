// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/audience-choice/auth"
	"github.com/danielhkuo/audience-choice/models"
	"github.com/danielhkuo/audience-choice/testutil"
)

func TestGenerateCodes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCodeHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name           string
		count          int
		expectedStatus int
	}{
		{"single code", 1, http.StatusCreated},
		{"batch", 25, http.StatusCreated},
		{"upper bound", models.MaxCodesPerBatch, http.StatusCreated},
		{"zero", 0, http.StatusBadRequest},
		{"negative", -3, http.StatusBadRequest},
		{"too many", models.MaxCodesPerBatch + 1, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/access-codes/generate", models.GenerateCodesRequest{Count: tt.count}, testutil.AdminHeaders())
			w := httptest.NewRecorder()

			handler.GenerateCodes(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.GenerateCodesResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Codes) != tt.count {
				t.Fatalf("Expected %d codes, got %d", tt.count, len(resp.Codes))
			}

			seen := make(map[string]bool)
			for _, code := range resp.Codes {
				if seen[code] {
					t.Errorf("Duplicate code %s", code)
				}
				seen[code] = true

				if normalized, err := auth.NormalizeAccessCode(code); err != nil || normalized != code {
					t.Errorf("Generated code %q is not canonical", code)
				}
				if codeUsed(t, db, code) {
					t.Errorf("New code %s should be unused", code)
				}
			}
		})
	}
}

func TestListCodes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCodeHandler(db, testutil.GetTestConfig())

	testutil.CreateTestCode(t, db, false)
	testutil.CreateTestCode(t, db, false)
	usedCode := testutil.CreateTestCode(t, db, true)

	req := testutil.MakeRequest("GET", "/api/access-codes", nil, testutil.AdminHeaders())
	w := httptest.NewRecorder()
	handler.ListCodes(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListCodesResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Stats.Total != 3 || resp.Stats.Used != 1 || resp.Stats.Available != 2 {
		t.Errorf("Unexpected stats: %+v", resp.Stats)
	}
	if len(resp.Codes) != 3 {
		t.Fatalf("Expected 3 codes, got %d", len(resp.Codes))
	}

	for _, c := range resp.Codes {
		if c.Code == usedCode {
			if !c.Used || c.UsedAt == nil {
				t.Errorf("Expected used code with used_at, got %+v", c)
			}
		} else if c.Used || c.UsedAt != nil {
			t.Errorf("Expected unused code without used_at, got %+v", c)
		}
	}
}

func TestListCodesEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCodeHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/api/access-codes", nil, testutil.AdminHeaders())
	w := httptest.NewRecorder()
	handler.ListCodes(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"codes":[]`) {
		t.Errorf("Expected empty codes array, got %s", w.Body.String())
	}
}

func TestDeleteCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCodeHandler(db, testutil.GetTestConfig())

	unused := testutil.CreateTestCode(t, db, false)
	used := testutil.CreateTestCode(t, db, true)

	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{"unused code", unused, http.StatusNoContent},
		{"already deleted", unused, http.StatusNotFound},
		{"used code", used, http.StatusConflict},
		{"unknown code", "ZZZZZZZZ", http.StatusNotFound},
		{"malformed code", "nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/api/access-codes/"+tt.code, nil, testutil.AdminHeaders())
			req.SetPathValue("code", tt.code)
			w := httptest.NewRecorder()

			handler.DeleteCode(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	if !codeExists(t, db, used) {
		t.Error("Used code must survive deletion attempts")
	}
}
