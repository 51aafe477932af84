package database

import (
	"context"
	"fmt"
)

//nolint:gochecknoglobals
var schema = map[string][]string{
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			username      TEXT    PRIMARY KEY,
			password      BLOB    NOT NULL,
			first_name    TEXT    NOT NULL,
			last_name     TEXT    NOT NULL,
			phone         TEXT    NOT NULL,
			join_at       INTEGER NOT NULL,
			last_login_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			from_username TEXT    NOT NULL REFERENCES users (username),
			to_username   TEXT    NOT NULL REFERENCES users (username),
			body          TEXT    NOT NULL,
			sent_at       INTEGER NOT NULL,
			read_at       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS messages_from_username_idx ON messages (from_username)`,
		`CREATE INDEX IF NOT EXISTS messages_to_username_idx ON messages (to_username)`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS users (
			username      TEXT   PRIMARY KEY,
			password      BYTEA  NOT NULL,
			first_name    TEXT   NOT NULL,
			last_name     TEXT   NOT NULL,
			phone         TEXT   NOT NULL,
			join_at       BIGINT NOT NULL,
			last_login_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id            BIGSERIAL PRIMARY KEY,
			from_username TEXT      NOT NULL REFERENCES users (username),
			to_username   TEXT      NOT NULL REFERENCES users (username),
			body          TEXT      NOT NULL,
			sent_at       BIGINT    NOT NULL,
			read_at       BIGINT
		)`,
		`CREATE INDEX IF NOT EXISTS messages_from_username_idx ON messages (from_username)`,
		`CREATE INDEX IF NOT EXISTS messages_to_username_idx ON messages (to_username)`,
	},
}

func (db *DB) migrate(ctx context.Context) error {
	for i, stmt := range schema[db.driver] {
		if _, err := db.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}

	return nil
}
