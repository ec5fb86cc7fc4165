// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database type names accepted by Open.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Dialect carries the per-driver differences the stores care about.
type Dialect struct {
	Name   string
	Driver string

	// ShareLock is appended to a single-row SELECT that must keep the row
	// alive until commit without blocking other readers of that row.
	ShareLock string

	// UpdateLock is appended to a SELECT whose rows are about to be deleted.
	UpdateLock string

	// ArchiveLock is run first in the archive transaction. It blocks new
	// topics and votes until the round is cleared; plain reads continue.
	ArchiveLock string

	schema string
}

var (
	SQLite = Dialect{
		Name:   TypeSQLite,
		Driver: "sqlite",
		schema: sqliteSchema,
	}

	Postgres = Dialect{
		Name:        TypePostgres,
		Driver:      "postgres",
		ShareLock:   " FOR SHARE",
		UpdateLock:  " FOR UPDATE",
		ArchiveLock: "LOCK TABLE topic, vote IN EXCLUSIVE MODE",
		schema:      postgresSchema,
	}
)

// DialectFor looks up a dialect by database type.
func DialectFor(databaseType string) (Dialect, error) {
	switch strings.ToLower(databaseType) {
	case TypeSQLite, "sqlite3", "":
		return SQLite, nil
	case TypePostgres, "postgresql":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database type %q", databaseType)
}

// Open connects to the database and verifies the connection.
//
// SQLite connections are limited to one so that immediate transactions queue
// in the pool instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, databaseType, url string) (*sql.DB, Dialect, error) {
	d, err := DialectFor(databaseType)
	if err != nil {
		return nil, Dialect{}, err
	}

	dsn := url
	if d.Name == TypeSQLite {
		dsn = sqliteDSN(url)
	}

	conn, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to open %s database: %w", d.Name, err)
	}
	if d.Name == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, Dialect{}, fmt.Errorf("%s ping failed: %w", d.Name, err)
	}

	return conn, d, nil
}

// sqliteDSN turns a path into a modernc DSN with foreign keys enforced and
// write transactions taking the lock at BEGIN.
func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}
