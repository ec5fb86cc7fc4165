// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the topic-vote bot.

topic-vote collects discussion topics for a show through a Discord bot:
members propose topics and vote for them, admins archive the current list
under an episode number or delete topics, and subscribers get a weekly
reminder to vote. A small read-only HTTP API exposes the current ranking
and the archive.

# Starting the Server

	BOT_TOKEN=... ADMIN_IDS=123456789012345678 go run .

Or with a config file (the bot's config.yaml keys are accepted):

	go run . --config config.yaml -p 3318

# Configuration

Required settings:

  - BOT_TOKEN (--bot-token, botApiToken): Discord bot token
  - ADMIN_IDS (--admins, adminIds): user ids allowed to archive and delete

Optional settings:

  - PORT (-p): HTTP port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string or SQLite path (default: topic-vote.db)
  - GUILD_ID (--guild): register slash commands in one guild only
  - NOTIFY_DAY / NOTIFY_TIME: reminder schedule (default: Saturday 10:00)

# Architecture

  - topics: topic registry, vote ledger, archive pipeline, subscriptions
  - session: per-user dialogue state machine and reply rendering
  - chat: Discord transport (slash commands, buttons, DMs)
  - notify: weekly reminder schedule and paced broadcast
  - auth: admin and banned-user checks
  - handlers, router, middleware: read-only HTTP API
  - db: driver selection, schema, transactions, constraint errors
  - models: domain and response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
