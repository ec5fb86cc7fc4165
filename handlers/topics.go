// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/topic-vote/middleware"
	"github.com/danielhkuo/topic-vote/models"
	"github.com/danielhkuo/topic-vote/topics"
)

// TopicReader is the read side of the topic engine.
type TopicReader interface {
	ListCurrent(ctx context.Context) ([]models.RankedTopic, error)
	Get(ctx context.Context, topicID int64) (models.RankedTopic, error)
	ListArchived(ctx context.Context, episode int) ([]models.ArchivedTopic, error)
	Episodes(ctx context.Context) ([]int, error)
}

type TopicsHandler struct {
	topics TopicReader
}

func NewTopicsHandler(topics TopicReader) *TopicsHandler {
	return &TopicsHandler{topics: topics}
}

// ListTopics handles GET /topics
// Current topics, most votes first
func (h *TopicsHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	current, err := h.topics.ListCurrent(r.Context())
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TopicListResponse{Topics: current})
}

// GetTopic handles GET /topics/{id}
func (h *TopicsHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || topicID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid topic id")
		return
	}

	topic, err := h.topics.Get(r.Context(), topicID)
	if errors.Is(err, topics.ErrTopicNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		slog.Error("failed to get topic", "error", err, "topic_id", topicID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TopicResponse{Topic: topic})
}

// ListEpisodes handles GET /episodes
// Episode numbers that have archived topics, newest first
func (h *TopicsHandler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.topics.Episodes(r.Context())
	if err != nil {
		slog.Error("failed to list episodes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EpisodeListResponse{Episodes: episodes})
}

// ListArchive handles GET /episodes/{episode}/topics
// An episode with nothing archived is a 404, matching the chat /list reply
func (h *TopicsHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	episode, err := strconv.Atoi(r.PathValue("episode"))
	if err != nil || episode < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid episode number")
		return
	}

	archived, err := h.topics.ListArchived(r.Context(), episode)
	if err != nil {
		slog.Error("failed to list archived topics", "error", err, "episode", episode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(archived) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No archived topics for this episode")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ArchiveResponse{Episode: episode, Topics: archived})
}
