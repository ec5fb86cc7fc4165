// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/topic-vote/handlers"
	"github.com/danielhkuo/topic-vote/middleware"
)

func NewRouter(reader handlers.TopicReader) *http.ServeMux {
	mux := http.NewServeMux()

	topicsHandler := handlers.NewTopicsHandler(reader)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Current topics
	mux.HandleFunc("GET /topics", middleware.WithLogging(topicsHandler.ListTopics))
	mux.HandleFunc("GET /topics/{id}", middleware.WithLogging(topicsHandler.GetTopic))

	// Archive
	mux.HandleFunc("GET /episodes", middleware.WithLogging(topicsHandler.ListEpisodes))
	mux.HandleFunc("GET /episodes/{episode}/topics", middleware.WithLogging(topicsHandler.ListArchive))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("topic-vote API v1"))
	})

	return mux
}
