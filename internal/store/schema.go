package store

import (
	"database/sql"
	"fmt"
)

// Table and column names shared by the query builders.
const (
	tableKV        = "kv"
	tableLLMEvents = "llm_request_events"
	tableResults   = "practice_results"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sequence (
		id   INTEGER PRIMARY KEY CHECK (id = 1),
		next INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO sequence (id, next) VALUES (1, 1)`,
	`CREATE TABLE IF NOT EXISTS kv (
		namespace  TEXT    NOT NULL DEFAULT '',
		key        TEXT    NOT NULL,
		value      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (namespace, key)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE IF NOT EXISTS practice_results (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		session_id    TEXT    NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		mode          TEXT    NOT NULL,
		difficulty    TEXT    NOT NULL,
		correct_count INTEGER NOT NULL,
		total         INTEGER NOT NULL,
		score         INTEGER NOT NULL,
		summary       TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS practice_results_mode ON practice_results (mode)`,
}

// migrate brings db up to the current schema. Every statement is
// idempotent so it runs on each open.
func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
