// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB, d Dialect) error {
	_, err := conn.Exec(d.schema)
	if err != nil {
		return fmt.Errorf("failed to create %s schema: %w", d.Name, err)
	}

	return nil
}

// Timestamps are stored as unix seconds so both drivers scan them the same way.
const sqliteSchema = `
-- Topics currently open for voting
CREATE TABLE IF NOT EXISTS topic (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    proposer_id TEXT NOT NULL,
    proposer_name TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (title, body)
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    voter_id TEXT NOT NULL,
    topic_id INTEGER NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    cast_at INTEGER NOT NULL,
    PRIMARY KEY (voter_id, topic_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_topic_id ON vote(topic_id);

-- Reminder subscribers
CREATE TABLE IF NOT EXISTS subscriber (
    user_id TEXT PRIMARY KEY,
    subscribed_at INTEGER NOT NULL
);

-- Archived topics, one batch per archive run
CREATE TABLE IF NOT EXISTS archived_topic (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id TEXT NOT NULL,
    episode INTEGER NOT NULL,
    proposer_id TEXT NOT NULL,
    proposer_name TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    vote_count INTEGER NOT NULL CHECK (vote_count >= 0),
    archived_at INTEGER NOT NULL,
    UNIQUE (batch_id, title, body)
);

CREATE INDEX IF NOT EXISTS idx_archived_topic_episode ON archived_topic(episode);
`

const postgresSchema = `
-- Topics currently open for voting
CREATE TABLE IF NOT EXISTS topic (
    id BIGSERIAL PRIMARY KEY,
    proposer_id TEXT NOT NULL,
    proposer_name TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    UNIQUE (title, body)
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    voter_id TEXT NOT NULL,
    topic_id BIGINT NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    cast_at BIGINT NOT NULL,
    PRIMARY KEY (voter_id, topic_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_topic_id ON vote(topic_id);

-- Reminder subscribers
CREATE TABLE IF NOT EXISTS subscriber (
    user_id TEXT PRIMARY KEY,
    subscribed_at BIGINT NOT NULL
);

-- Archived topics, one batch per archive run
CREATE TABLE IF NOT EXISTS archived_topic (
    id BIGSERIAL PRIMARY KEY,
    batch_id TEXT NOT NULL,
    episode INTEGER NOT NULL,
    proposer_id TEXT NOT NULL,
    proposer_name TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    vote_count INTEGER NOT NULL CHECK (vote_count >= 0),
    archived_at BIGINT NOT NULL,
    UNIQUE (batch_id, title, body)
);

CREATE INDEX IF NOT EXISTS idx_archived_topic_episode ON archived_topic(episode);
`
