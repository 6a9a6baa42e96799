// Package localstore provides SQLite-backed report storage for offline and
// single-user runs of the feedback engine.
package localstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaV1 defines the initial database schema. Timestamps are unix milliseconds.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS organizations (
	id                          TEXT PRIMARY KEY,
	name                        TEXT NOT NULL DEFAULT '',
	min_responses_for_anonymity INTEGER NOT NULL DEFAULT 3
);

CREATE TABLE IF NOT EXISTS review_cycles (
	id               TEXT PRIMARY KEY,
	organization_id  TEXT NOT NULL,
	reviewee_id      TEXT NOT NULL,
	questionnaire_id TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'active',
	created_at       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_cycles_reviewee ON review_cycles(reviewee_id, questionnaire_id, created_at);
CREATE INDEX IF NOT EXISTS idx_cycles_org ON review_cycles(organization_id, questionnaire_id);

CREATE TABLE IF NOT EXISTS questions (
	id               TEXT PRIMARY KEY,
	questionnaire_id TEXT NOT NULL,
	section_id       TEXT NOT NULL,
	section_title    TEXT NOT NULL DEFAULT '',
	section_order    INTEGER NOT NULL DEFAULT 0,
	question_order   INTEGER NOT NULL DEFAULT 0,
	question_text    TEXT NOT NULL DEFAULT '',
	question_type    TEXT NOT NULL,
	config_json      TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_questions_questionnaire ON questions(questionnaire_id);

CREATE TABLE IF NOT EXISTS responses (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	cycle_id     TEXT NOT NULL,
	question_id  TEXT NOT NULL,
	token_id     TEXT NOT NULL,
	category     TEXT NOT NULL,
	answer_json  TEXT NOT NULL DEFAULT '{}',
	submitted_at INTEGER NOT NULL DEFAULT 0,
	UNIQUE(cycle_id, question_id, token_id)
);
CREATE INDEX IF NOT EXISTS idx_responses_cycle ON responses(cycle_id);

CREATE TABLE IF NOT EXISTS reports (
	id           TEXT PRIMARY KEY,
	cycle_id     TEXT NOT NULL UNIQUE,
	access_token TEXT NOT NULL UNIQUE,
	report_json  TEXT NOT NULL DEFAULT '{}',
	available    INTEGER NOT NULL DEFAULT 1,
	generated_at INTEGER NOT NULL DEFAULT 0
);
`

// Store is a reports.Store backed by a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path with recommended pragmas
// and runs the V1 schema migration.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer; WAL still allows concurrent readers.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
