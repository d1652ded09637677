// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/czoodle-vote/auth"
	"github.com/danielhkuo/czoodle-vote/cliparse"
	"github.com/danielhkuo/czoodle-vote/db"
	"github.com/danielhkuo/czoodle-vote/models"
)

// TestNoncePrefix is short enough to mine a chain in a few hundred hashes
const TestNoncePrefix = "77"

// SetupTestDB creates a fresh sqlite database with the votes schema.
// The file lives in t.TempDir and is closed on cleanup.
func SetupTestDB(t *testing.T, cfg cliparse.Config) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "votes.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cfg.Candidates); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns an SQLStore over a fresh test database
func SetupTestStore(t *testing.T, cfg cliparse.Config) *db.SQLStore {
	t.Helper()
	return db.NewSQLStore(SetupTestDB(t, cfg), db.TypeSQLite, cfg.Candidates)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		HashSalt:     "test-hash-salt",
		NonceTag:     auth.DefaultNonceTag,
		NoncePrefix:  TestNoncePrefix,
		MinRounds:    0,
		Candidates:   models.DefaultCandidateCount,
		DivideBudget: models.DefaultDivideBudget,
	}
}

// NewValidVote returns a vote that passes validation under cfg, with a
// fresh uuid and a mined chain of the given number of rounds.
// cfg must use the default ten candidates and budget of five.
func NewValidVote(t *testing.T, cfg cliparse.Config, rounds int) *models.Vote {
	t.Helper()

	id := uuid.NewString()
	chain := auth.NonceChain{Tag: cfg.NonceTag, Prefix: cfg.NoncePrefix}
	nonces, err := chain.Mine(context.Background(), id, rounds)
	if err != nil {
		t.Fatalf("Failed to mine nonces: %v", err)
	}

	return &models.Vote{
		UUID:   id,
		Nonces: nonces,
		Order:  []int{3, 1, 0, 2, 4, 5, 6, 7, 8, 9},
		Polls: models.Polls{
			TwoRound: models.Abstain,
			OneRound: 3,
			Divide:   []int{5, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			D21:      []int{1, 1, 0, 0, -1, 0, 0, 0, 0, 0},
			Doodle:   []int{2, 1, 0, 0, 0, 0, 0, 0, 0, 0},
			Order:    []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
			Star:     []int{100, 50, 0, 0, 0, 0, 0, 0, 0, 1},
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
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
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
