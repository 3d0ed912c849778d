// Package history persists submitted answers in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"askterm/internal/logging"
)

// Entry is one submitted answer.
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options,omitempty"`
	Mode      string    `json:"mode"` // option or input: how the answer was given
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the answer history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.History("history store opened: %s", path)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS answers (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		question TEXT NOT NULL,
		options_json TEXT,
		mode TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id);
	CREATE INDEX IF NOT EXISTS idx_answers_created ON answers(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores e, filling in ID and CreatedAt when unset, and returns the
// stored entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var optsJSON []byte
	if len(e.Options) > 0 {
		var err error
		if optsJSON, err = json.Marshal(e.Options); err != nil {
			return Entry{}, fmt.Errorf("failed to encode options: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, session_id, question, options_json, mode, value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Question, nullString(optsJSON), e.Mode, e.Value, e.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record answer: %w", err)
	}

	logging.Get(logging.CategoryHistory).Debug("recorded answer %s for session %s", e.ID, e.SessionID)
	return e, nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	return s.query(ctx, `
		SELECT id, session_id, question, options_json, mode, value, created_at
		FROM answers ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// BySession returns every entry for a session id, oldest first.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]Entry, error) {
	return s.query(ctx, `
		SELECT id, session_id, question, options_json, mode, value, created_at
		FROM answers WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`, sessionID)
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return n, nil
}

// Prune keeps the newest keep entries and deletes the rest. keep <= 0 is a
// no-op. It returns the number of deleted rows.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM answers WHERE id NOT IN (
			SELECT id FROM answers ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		logging.History("pruned %d old answers (keeping %d)", n, keep)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string, args ...interface{}) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var optsJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Question, &optsJSON, &e.Mode, &e.Value, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		if optsJSON.Valid && optsJSON.String != "" {
			if err := json.Unmarshal([]byte(optsJSON.String), &e.Options); err != nil {
				return nil, fmt.Errorf("failed to decode options for %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
