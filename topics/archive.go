// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package topics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/topic-vote/db"
	"github.com/danielhkuo/topic-vote/models"
)

// Archiver moves the current round of topics into the archive.
type Archiver struct {
	conn    *sql.DB
	dialect db.Dialect
	now     func() time.Time
	batchID func() string
}

func NewArchiver(conn *sql.DB, dialect db.Dialect) *Archiver {
	return &Archiver{conn: conn, dialect: dialect, now: time.Now, batchID: uuid.NewString}
}

// Archive snapshots every current topic with its final vote count under the
// episode, then clears all votes and topics. Either everything moves or
// nothing does. Archiving with no current topics yields an empty batch.
//
// Archiving into an episode that already has topics is allowed; each run gets
// its own batch id.
func (a *Archiver) Archive(ctx context.Context, episode int) (models.ArchiveBatch, error) {
	batch := models.ArchiveBatch{
		ID:         a.batchID(),
		Episode:    episode,
		ArchivedAt: a.now().UTC().Truncate(time.Second),
	}

	err := db.WithTx(ctx, a.conn, func(tx *sql.Tx) error {
		if err := a.lockRound(ctx, tx); err != nil {
			return err
		}

		// Snapshot the ranking
		ranked, err := listRanked(ctx, tx)
		if err != nil {
			return err
		}

		for _, t := range ranked {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO archived_topic
				    (batch_id, episode, proposer_id, proposer_name, title, body, vote_count, archived_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, batch.ID, episode, t.ProposerID, t.ProposerName, t.Title, t.Body, t.Votes, batch.ArchivedAt.Unix())
			if err != nil {
				return err
			}
		}

		// Clear the round
		if _, err := tx.ExecContext(ctx, `DELETE FROM vote`); err != nil {
			return fmt.Errorf("failed to clear votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM topic`); err != nil {
			return fmt.Errorf("failed to clear topics: %w", err)
		}

		batch.Count = len(ranked)
		return nil
	})
	if db.IsUniqueViolation(err) {
		slog.Warn("archive rolled back on duplicate topic", "episode", episode, "batch_id", batch.ID)
		return models.ArchiveBatch{}, ErrDuplicateInArchive
	}
	if err != nil {
		return models.ArchiveBatch{}, fmt.Errorf("failed to archive episode %d: %w", episode, err)
	}

	slog.Info("topics archived", "episode", episode, "batch_id", batch.ID, "count", batch.Count)
	return batch, nil
}

// lockRound keeps proposals and votes out until the archive commits, so the
// deletes below remove exactly the topics that were snapshotted. SQLite
// already holds the database write lock.
func (a *Archiver) lockRound(ctx context.Context, tx *sql.Tx) error {
	if a.dialect.ArchiveLock == "" {
		return nil
	}
	if _, err := tx.ExecContext(ctx, a.dialect.ArchiveLock); err != nil {
		return fmt.Errorf("failed to lock topics: %w", err)
	}
	return nil
}

// EpisodeArchived reports whether any topics were archived under the episode.
func (a *Archiver) EpisodeArchived(ctx context.Context, episode int) (bool, error) {
	var exists bool
	err := a.conn.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM archived_topic WHERE episode = $1)
	`, episode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check episode: %w", err)
	}
	return exists, nil
}

// Episodes returns every episode number with archived topics, newest first.
func (a *Archiver) Episodes(ctx context.Context) ([]int, error) {
	rows, err := a.conn.QueryContext(ctx, `
		SELECT DISTINCT episode FROM archived_topic ORDER BY episode DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	episodes := []int{}
	for rows.Next() {
		var e int
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read episodes: %w", err)
	}
	return episodes, nil
}
