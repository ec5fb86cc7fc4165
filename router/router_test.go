// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/topic-vote/db"
	"github.com/danielhkuo/topic-vote/testutil"
	"github.com/danielhkuo/topic-vote/topics"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *topics.Service) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	svc := topics.NewService(conn, db.SQLite)
	return NewRouter(svc), svc
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "topic-vote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, svc := newTestRouter(t)
	ctx := context.Background()

	topic, err := svc.Propose(ctx, "1", "alice", "Routed", "topic")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Archive(ctx, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Propose(ctx, "1", "alice", "Current", "topic"); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/", http.StatusOK},
		{"GET", "/topics", http.StatusOK},
		{"GET", "/topics/2", http.StatusOK},
		{"GET", "/episodes", http.StatusOK},
		{"GET", "/episodes/4/topics", http.StatusOK},

		// Path values reach the handlers
		{"GET", "/topics/abc", http.StatusBadRequest},
		{"GET", "/episodes/5/topics", http.StatusNotFound},

		// Unknown paths and write methods are not routed
		{"GET", "/polls", http.StatusNotFound},
		{"POST", "/topics", http.StatusMethodNotAllowed},
		{"DELETE", "/topics/2", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	// The archived topic keeps its title but is no longer current
	req := httptest.NewRequest("GET", "/topics/"+formatID(topic.ID), nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected archived topic to be gone from /topics, got %d", w.Code)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
