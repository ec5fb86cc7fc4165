// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and the small set of
driver differences the topic stores depend on.

# Opening

Open selects a driver by database type and pings it:

	conn, dialect, err := db.Open(ctx, "sqlite", "topics.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		log.Fatal(err)
	}

Supported types are "sqlite" (modernc.org/sqlite, the default) and
"postgres" (github.com/lib/pq). SQLite paths are opened with foreign keys
enforced, a busy timeout, and immediate write transactions.

# Tables

	topic           current topics, UNIQUE (title, body)
	vote            PRIMARY KEY (voter_id, topic_id), cascades from topic
	subscriber      reminder recipients
	archived_topic  episode-tagged snapshots, UNIQUE (batch_id, title, body)

# Relationships

	topic 1──* vote

archived_topic and subscriber stand alone.

# Transactions

WithTx wraps a function in BEGIN/COMMIT and always rolls back on error.
IsUniqueViolation and IsForeignKeyViolation classify constraint errors from
either driver by error code.
*/
package db
