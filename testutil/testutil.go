// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/audience-choice/auth"
	"github.com/danielhkuo/audience-choice/cliparse"
	"github.com/danielhkuo/audience-choice/db"
)

// TestAdminKey is the admin key used by GetTestConfig
const TestAdminKey = "test-admin-key"

// TestBudget is the per-voter budget used by GetTestConfig
const TestBudget = 50000

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.Config{
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  "file::memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       "file::memory:",
		DatabaseType:      cliparse.DatabaseSQLite,
		AdminKey:          TestAdminKey,
		IPHashSalt:        "test-ip-salt",
		TotalBudget:       TestBudget,
		RequireAccessCode: true,
	}
}

// AdminHeaders returns request headers that pass the admin gate
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// CreateTestFounder inserts a founder and returns its ID.
// createdAt controls server order; pass a strictly increasing value for ordered fixtures.
func CreateTestFounder(t *testing.T, conn *sql.DB, name string, createdAt time.Time) string {
	t.Helper()

	founderID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO founder (id, name, company, logo, profile, description, color, created_at)
		VALUES ($1, $2, $3, '', '', 'A test founder', 'from-green-400 to-emerald-600', $4)
	`, founderID, name, name+" Inc", createdAt)
	if err != nil {
		t.Fatalf("Failed to create test founder: %v", err)
	}

	return founderID
}

// CreateTestCode inserts an access code and returns it
func CreateTestCode(t *testing.T, conn *sql.DB, used bool) string {
	t.Helper()

	code, err := auth.GenerateAccessCode()
	if err != nil {
		t.Fatalf("Failed to generate access code: %v", err)
	}

	var usedAt *time.Time
	if used {
		now := time.Now()
		usedAt = &now
	}

	_, err = conn.Exec(`
		INSERT INTO access_code (code, used, created_at, used_at)
		VALUES ($1, $2, $3, $4)
	`, code, used, time.Now(), usedAt)
	if err != nil {
		t.Fatalf("Failed to create test access code: %v", err)
	}

	return code
}

// CreateTestVote records a vote directly, bypassing the handler checks
func CreateTestVote(t *testing.T, conn *sql.DB, investorName string, allocations map[string]int64) string {
	t.Helper()

	voteID := uuid.NewString()
	voteCode, _ := auth.GenerateVoteCode()
	_, err := conn.Exec(`
		INSERT INTO vote (id, vote_code, investor_name, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, voteID, voteCode, investorName, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	for founderID, amount := range allocations {
		_, err := conn.Exec(`
			INSERT INTO vote_allocation (vote_id, founder_id, amount)
			VALUES ($1, $2, $3)
		`, voteID, founderID, amount)
		if err != nil {
			t.Fatalf("Failed to create test allocation: %v", err)
		}
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
