// Package audit persists a session lifecycle trail to sqlite: when a
// session opened, from which tag, and when (and why) it closed. It is
// a supplemental feature (SPEC_FULL §0, §2) with no counterpart in
// spec.md's protocol engine proper — nothing in session or proto
// depends on it, the daemon accept loop records into it.
package audit

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	tag TEXT NOT NULL,
	opened_at INTEGER NOT NULL,
	closed_at INTEGER,
	close_reason TEXT
)`

type Store struct {
	db *sql.DB
}

// Open creates (or reopens) the audit database at path, which may be
// ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordOpen inserts a row for a newly accepted session.
func (s *Store) RecordOpen(id, tag string, openedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, tag, opened_at) VALUES (?, ?, ?)`,
		id, tag, openedAt.Unix(),
	)
	return err
}

// RecordClose stamps closedAt and reason against an already-opened
// session row.
func (s *Store) RecordClose(id string, closedAt time.Time, reason string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET closed_at = ?, close_reason = ? WHERE id = ?`,
		closedAt.Unix(), reason, id,
	)
	return err
}

// Session is one audit row, as returned by Recent.
type Session struct {
	ID          string
	Tag         string
	OpenedAt    time.Time
	ClosedAt    *time.Time
	CloseReason string
}

// Recent returns up to limit sessions, most recently opened first.
func (s *Store) Recent(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, tag, opened_at, closed_at, close_reason FROM sessions ORDER BY opened_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			sess       Session
			openedUnix int64
			closedUnix sql.NullInt64
			reason     sql.NullString
		)
		if err := rows.Scan(&sess.ID, &sess.Tag, &openedUnix, &closedUnix, &reason); err != nil {
			return nil, err
		}
		sess.OpenedAt = time.Unix(openedUnix, 0)
		if closedUnix.Valid {
			t := time.Unix(closedUnix.Int64, 0)
			sess.ClosedAt = &t
		}
		sess.CloseReason = reason.String
		out = append(out, sess)
	}
	return out, rows.Err()
}
