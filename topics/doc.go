// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package topics is the topic lifecycle and voting engine.

A topic is proposed, collects votes while it is current, and leaves the
current list either by admin deletion or by archival into an episode.

# Components

  - Registry: Propose, Delete, Get, ListCurrent, ListArchived
  - Ledger: Toggle, CountFor, HasVoted, VotedTopics
  - Archiver: Archive, EpisodeArchived, Episodes
  - Subscriptions: Subscribe, Unsubscribe, ListSubscribers

Service bundles all four behind one value:

	svc := topics.NewService(conn, dialect)
	topic, err := svc.Propose(ctx, "42", "alice", "Rust vs Go", "discuss")
	change, err := svc.ToggleVote(ctx, "7", topic.ID)

# Consistency

Every mutation runs in a single transaction. Uniqueness is enforced by the
database: (title, body) for current topics and (voter_id, topic_id) for
votes. Vote counts are always computed from live vote rows.

# Errors

	ErrDuplicateTopic      Propose with an existing (title, body)
	ErrTopicNotFound       Delete/Get of a topic that is gone
	ErrTopicGone           Toggle on a topic that is gone
	ErrDuplicateInArchive  Archive hit an archive uniqueness constraint
*/
package topics
