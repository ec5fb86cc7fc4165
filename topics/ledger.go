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
)

// VoteChange is the outcome of a toggle.
type VoteChange int

const (
	VoteAdded VoteChange = iota + 1
	VoteRemoved
)

func (c VoteChange) String() string {
	switch c {
	case VoteAdded:
		return "added"
	case VoteRemoved:
		return "removed"
	}
	return "unknown"
}

// maxToggleAttempts bounds retries after a concurrent toggle of the same
// (voter, topic) pair won the insert.
const maxToggleAttempts = 3

// Ledger records one vote per (voter, topic) pair.
type Ledger struct {
	conn    *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func NewLedger(conn *sql.DB, dialect db.Dialect) *Ledger {
	return &Ledger{conn: conn, dialect: dialect, now: time.Now}
}

// Toggle adds the voter's vote for the topic, or removes it if it exists.
// Returns ErrTopicGone if the topic was deleted or archived.
func (l *Ledger) Toggle(ctx context.Context, voterID string, topicID int64) (VoteChange, error) {
	var err error
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		var change VoteChange
		change, err = l.toggleOnce(ctx, voterID, topicID)
		if err == nil {
			slog.Info("vote toggled", "topic_id", topicID, "voter_id", voterID, "change", change.String())
			return change, nil
		}
		if !db.IsUniqueViolation(err) {
			return 0, err
		}
		slog.Debug("vote toggle raced, retrying", "topic_id", topicID, "voter_id", voterID, "attempt", attempt)
	}
	return 0, fmt.Errorf("vote toggle kept conflicting: %w", err)
}

func (l *Ledger) toggleOnce(ctx context.Context, voterID string, topicID int64) (VoteChange, error) {
	var change VoteChange
	err := db.WithTx(ctx, l.conn, func(tx *sql.Tx) error {
		// Holds the topic row until commit so delete and archive wait for us.
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM topic WHERE id = $1`+l.dialect.ShareLock, topicID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTopicGone
		}
		if err != nil {
			return fmt.Errorf("failed to lock topic: %w", err)
		}

		// Remove existing vote
		res, err := tx.ExecContext(ctx, `
			DELETE FROM vote WHERE voter_id = $1 AND topic_id = $2
		`, voterID, topicID)
		if err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read deleted votes: %w", err)
		}
		if n > 0 {
			change = VoteRemoved
			return nil
		}

		// No vote yet, cast one
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (voter_id, topic_id, cast_at)
			VALUES ($1, $2, $3)
		`, voterID, topicID, l.now().Unix())
		if db.IsForeignKeyViolation(err) {
			return ErrTopicGone
		}
		if err != nil {
			return err
		}
		change = VoteAdded
		return nil
	})
	return change, err
}

// CountFor returns the live number of votes for a topic.
func (l *Ledger) CountFor(ctx context.Context, topicID int64) (int, error) {
	var n int
	err := l.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote WHERE topic_id = $1`, topicID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// HasVoted reports whether the voter currently votes for the topic.
func (l *Ledger) HasVoted(ctx context.Context, voterID string, topicID int64) (bool, error) {
	var exists bool
	err := l.conn.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE voter_id = $1 AND topic_id = $2
		)
	`, voterID, topicID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// VotedTopics returns the set of topic ids the voter currently votes for.
func (l *Ledger) VotedTopics(ctx context.Context, voterID string) (map[int64]bool, error) {
	rows, err := l.conn.QueryContext(ctx, `SELECT topic_id FROM vote WHERE voter_id = $1`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	voted := make(map[int64]bool)
	for rows.Next() {
		var topicID int64
		if err := rows.Scan(&topicID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		voted[topicID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return voted, nil
}
