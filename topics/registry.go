// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package topics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/topic-vote/db"
	"github.com/danielhkuo/topic-vote/models"
)

// Registry creates, deletes and lists topics.
type Registry struct {
	conn    *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func NewRegistry(conn *sql.DB, dialect db.Dialect) *Registry {
	return &Registry{conn: conn, dialect: dialect, now: time.Now}
}

// Propose stores a new topic. Title length is the caller's concern; the
// registry only guards identity, which the (title, body) constraint enforces.
func (r *Registry) Propose(ctx context.Context, proposerID, displayName, title, body string) (models.Topic, error) {
	topic := models.Topic{
		ProposerID:   proposerID,
		ProposerName: displayName,
		Title:        title,
		Body:         body,
		CreatedAt:    r.now().UTC().Truncate(time.Second),
	}

	err := db.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO topic (proposer_id, proposer_name, title, body, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, proposerID, displayName, title, body, topic.CreatedAt.Unix()).Scan(&topic.ID)
	})
	// Same title and body already proposed
	if db.IsUniqueViolation(err) {
		return models.Topic{}, ErrDuplicateTopic
	}
	if err != nil {
		return models.Topic{}, fmt.Errorf("failed to insert topic: %w", err)
	}

	slog.Info("topic proposed", "topic_id", topic.ID, "proposer_id", proposerID)
	return topic, nil
}

// Delete removes a topic together with its votes.
func (r *Registry) Delete(ctx context.Context, topicID int64) error {
	err := db.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		// Lock topic row
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM topic WHERE id = $1`+r.dialect.UpdateLock, topicID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTopicNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock topic: %w", err)
		}

		// Votes first, then the topic
		if _, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE topic_id = $1`, topicID); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM topic WHERE id = $1`, topicID)
		if err != nil {
			return fmt.Errorf("failed to delete topic: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrTopicNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("topic deleted", "topic_id", topicID)
	return nil
}

// Get returns a current topic with its live vote count.
func (r *Registry) Get(ctx context.Context, topicID int64) (models.RankedTopic, error) {
	var t models.RankedTopic
	var createdAt int64
	err := r.conn.QueryRowContext(ctx, `
		SELECT t.id, t.proposer_id, t.proposer_name, t.title, t.body, t.created_at,
		       (SELECT COUNT(*) FROM vote v WHERE v.topic_id = t.id)
		FROM topic t
		WHERE t.id = $1
	`, topicID).Scan(&t.ID, &t.ProposerID, &t.ProposerName, &t.Title, &t.Body, &createdAt, &t.Votes)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RankedTopic{}, ErrTopicNotFound
	}
	if err != nil {
		return models.RankedTopic{}, fmt.Errorf("failed to query topic: %w", err)
	}
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return t, nil
}

// ListCurrent returns current topics, most votes first, ties in proposal order.
func (r *Registry) ListCurrent(ctx context.Context) ([]models.RankedTopic, error) {
	return listRanked(ctx, r.conn)
}

// Count returns the number of current topics.
func (r *Registry) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM topic`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count topics: %w", err)
	}
	return n, nil
}

// ListArchived returns the archived topics of an episode, most votes first.
// Batches archived under the same episode are interleaved by vote count.
func (r *Registry) ListArchived(ctx context.Context, episode int) ([]models.ArchivedTopic, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT id, batch_id, episode, proposer_id, proposer_name, title, body, vote_count, archived_at
		FROM archived_topic
		WHERE episode = $1
		ORDER BY vote_count DESC, id ASC
	`, episode)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived topics: %w", err)
	}
	defer rows.Close()

	archived := []models.ArchivedTopic{}
	for rows.Next() {
		var a models.ArchivedTopic
		var archivedAt int64
		if err := rows.Scan(&a.ID, &a.BatchID, &a.Episode, &a.ProposerID, &a.ProposerName,
			&a.Title, &a.Body, &a.VoteCount, &archivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archived topic: %w", err)
		}
		a.ArchivedAt = time.Unix(archivedAt, 0).UTC()
		archived = append(archived, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archived topics: %w", err)
	}
	return archived, nil
}

// listRanked is the single aggregation behind both listing and archiving.
func listRanked(ctx context.Context, q db.Querier) ([]models.RankedTopic, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.id, t.proposer_id, t.proposer_name, t.title, t.body, t.created_at,
		       COUNT(v.voter_id) AS votes
		FROM topic t
		LEFT JOIN vote v ON v.topic_id = t.id
		GROUP BY t.id, t.proposer_id, t.proposer_name, t.title, t.body, t.created_at
		ORDER BY votes DESC, t.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	ranked := []models.RankedTopic{}
	for rows.Next() {
		var t models.RankedTopic
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.ProposerID, &t.ProposerName, &t.Title, &t.Body, &createdAt, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		ranked = append(ranked, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topics: %w", err)
	}
	return ranked, nil
}
