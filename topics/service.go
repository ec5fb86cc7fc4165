// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package topics

import (
	"context"
	"database/sql"

	"github.com/danielhkuo/topic-vote/db"
	"github.com/danielhkuo/topic-vote/models"
)

// Service is the topic engine as seen by the chat and HTTP layers.
type Service struct {
	Registry      *Registry
	Ledger        *Ledger
	Archiver      *Archiver
	Subscriptions *Subscriptions
}

func NewService(conn *sql.DB, dialect db.Dialect) *Service {
	return &Service{
		Registry:      NewRegistry(conn, dialect),
		Ledger:        NewLedger(conn, dialect),
		Archiver:      NewArchiver(conn, dialect),
		Subscriptions: NewSubscriptions(conn),
	}
}

func (s *Service) Propose(ctx context.Context, proposerID, displayName, title, body string) (models.Topic, error) {
	return s.Registry.Propose(ctx, proposerID, displayName, title, body)
}

func (s *Service) Delete(ctx context.Context, topicID int64) error {
	return s.Registry.Delete(ctx, topicID)
}

func (s *Service) Get(ctx context.Context, topicID int64) (models.RankedTopic, error) {
	return s.Registry.Get(ctx, topicID)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Registry.Count(ctx)
}

func (s *Service) ListCurrent(ctx context.Context) ([]models.RankedTopic, error) {
	return s.Registry.ListCurrent(ctx)
}

func (s *Service) ListArchived(ctx context.Context, episode int) ([]models.ArchivedTopic, error) {
	return s.Registry.ListArchived(ctx, episode)
}

func (s *Service) ToggleVote(ctx context.Context, voterID string, topicID int64) (VoteChange, error) {
	return s.Ledger.Toggle(ctx, voterID, topicID)
}

func (s *Service) CountFor(ctx context.Context, topicID int64) (int, error) {
	return s.Ledger.CountFor(ctx, topicID)
}

func (s *Service) HasVoted(ctx context.Context, voterID string, topicID int64) (bool, error) {
	return s.Ledger.HasVoted(ctx, voterID, topicID)
}

func (s *Service) VotedTopics(ctx context.Context, voterID string) (map[int64]bool, error) {
	return s.Ledger.VotedTopics(ctx, voterID)
}

func (s *Service) Archive(ctx context.Context, episode int) (models.ArchiveBatch, error) {
	return s.Archiver.Archive(ctx, episode)
}

func (s *Service) EpisodeArchived(ctx context.Context, episode int) (bool, error) {
	return s.Archiver.EpisodeArchived(ctx, episode)
}

func (s *Service) Episodes(ctx context.Context) ([]int, error) {
	return s.Archiver.Episodes(ctx)
}

func (s *Service) Subscribe(ctx context.Context, userID string) error {
	return s.Subscriptions.Subscribe(ctx, userID)
}

func (s *Service) Unsubscribe(ctx context.Context, userID string) error {
	return s.Subscriptions.Unsubscribe(ctx, userID)
}

func (s *Service) ListSubscribers(ctx context.Context) ([]string, error) {
	return s.Subscriptions.ListSubscribers(ctx)
}
