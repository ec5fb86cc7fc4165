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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/topic-vote/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema in the
// test's temp dir. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, dialect, err := db.Open(context.Background(), db.TypeSQLite, filepath.Join(t.TempDir(), "topics.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupPostgresDB connects to the PostgreSQL database named by
// TEST_DATABASE_URL and empties every table. The test is skipped when the
// variable is unset.
func SetupPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, dialect, err := db.Open(context.Background(), db.TypePostgres, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	truncate := func() error {
		_, err := conn.Exec(`TRUNCATE archived_topic, vote, topic, subscriber RESTART IDENTITY`)
		return err
	}
	if err := truncate(); err != nil {
		conn.Close()
		t.Fatalf("Failed to clear tables: %v", err)
	}
	t.Cleanup(func() {
		truncate()
		conn.Close()
	})

	return conn
}

// CreateTestTopic inserts a topic directly and returns its ID
func CreateTestTopic(t *testing.T, conn *sql.DB, proposerID, title, body string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO topic (proposer_id, proposer_name, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, proposerID, "user-"+proposerID, title, body, time.Now().Unix()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test topic: %v", err)
	}

	return id
}

// CastTestVote inserts a vote row
func CastTestVote(t *testing.T, conn *sql.DB, voterID string, topicID int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (voter_id, topic_id, cast_at)
		VALUES ($1, $2, $3)
	`, voterID, topicID, time.Now().Unix())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// CreateTestArchivedTopic inserts an archived topic row under an episode
func CreateTestArchivedTopic(t *testing.T, conn *sql.DB, episode int, title string, votes int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO archived_topic
		    (batch_id, episode, proposer_id, proposer_name, title, body, vote_count, archived_at)
		VALUES ('test-batch', $1, '1', 'user-1', $2, 'body', $3, $4)
	`, episode, title, votes, time.Now().Unix())
	if err != nil {
		t.Fatalf("Failed to create archived topic: %v", err)
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
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
