// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists finished research/download sessions to a local
// SQLite database so their transcripts and outcomes survive the process.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-finder/pkg/types"
)

const dbFile = "sessions.db"

// Store manages the session SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Summary is one row of session history.
type Summary struct {
	ID        string
	Topic     string
	StartedAt time.Time
	Rounds    int
	Attempted int
	Succeeded int
}

// NewStore opens or creates the session database at dataDir/sessions.db,
// creating the schema if it does not exist.
func NewStore(cfg types.SessionConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			started_at TEXT NOT NULL,
			rounds INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			name TEXT,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id)`,
		`CREATE TABLE IF NOT EXISTS downloads (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			url TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT,
			path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_session ON downloads(session_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save persists a finished session with its transcript and downloads in one
// transaction.
func (s *Store) Save(ctx context.Context, session *types.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, topic, started_at, rounds) VALUES (?, ?, ?, ?)`,
		session.ID, session.Topic, session.StartedAt.UTC().Format(time.RFC3339), session.Rounds,
	); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	for i, m := range session.Messages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (session_id, seq, role, name, content) VALUES (?, ?, ?, ?, ?)`,
			session.ID, i, m.Role, m.Name, m.Content,
		); err != nil {
			return fmt.Errorf("inserting message %d: %w", i, err)
		}
	}

	for _, d := range session.Downloads {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO downloads (session_id, url, status, message, path) VALUES (?, ?, ?, ?, ?)`,
			session.ID, d.URL, string(d.Result.Status), d.Result.Message, d.Result.Path,
		); err != nil {
			return fmt.Errorf("inserting download for %s: %w", d.URL, err)
		}
	}

	return tx.Commit()
}

// List returns session summaries, most recent first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.topic, s.started_at, s.rounds,
			COUNT(d.rowid),
			COALESCE(SUM(CASE WHEN d.status = 'success' THEN 1 ELSE 0 END), 0)
		FROM sessions s
		LEFT JOIN downloads d ON d.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var started string
		if err := rows.Scan(&sum.ID, &sum.Topic, &started, &sum.Rounds, &sum.Attempted, &sum.Succeeded); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			sum.StartedAt = t
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get reassembles a full session record by ID.
func (s *Store) Get(ctx context.Context, id string) (*types.Session, error) {
	session := &types.Session{ID: id}

	var started string
	err := s.db.QueryRowContext(ctx,
		`SELECT topic, started_at, rounds FROM sessions WHERE id = ?`, id,
	).Scan(&session.Topic, &started, &session.Rounds)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
		session.StartedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, name, content FROM messages WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m types.Message
		if err := rows.Scan(&m.Role, &m.Name, &m.Content); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		session.Messages = append(session.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dRows, err := s.db.QueryContext(ctx,
		`SELECT url, status, message, path FROM downloads WHERE session_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer dRows.Close()
	for dRows.Next() {
		var d types.DownloadOutcome
		var status string
		if err := dRows.Scan(&d.URL, &status, &d.Result.Message, &d.Result.Path); err != nil {
			return nil, fmt.Errorf("scanning download row: %w", err)
		}
		d.Result.Status = types.DownloadStatus(status)
		session.Downloads = append(session.Downloads, d)
	}
	return session, dRows.Err()
}
