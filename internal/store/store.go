// Package store provides SQLite-backed persistence for the local history of
// tutorials this client generated. Only identifiers and form metadata are
// kept; tutorial content always comes from the backend.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianshen/codexplain/internal/tutorial"
)

// ErrNotFound is returned by Get when no entry has the given id.
var ErrNotFound = errors.New("history entry not found")

// Entry is one generated tutorial in the history.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	RepoURL   string    `json:"repo_url" yaml:"repo_url"`
	Language  string    `json:"language" yaml:"language"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store wraps a SQLite database holding the history table.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at dbPath and ensures
// all required tables exist. Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			repo_url   TEXT NOT NULL,
			language   TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS history_created_at ON history (created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:30], err)
		}
	}
	return nil
}

// Record inserts e, replacing any entry with the same id. A zero CreatedAt
// is set to now.
func (s *Store) Record(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("record: empty id")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO history (id, title, repo_url, language, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.RepoURL, e.Language, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}

// SetTitle fills in the title once the tutorial has been fetched. Unknown
// ids are ignored.
func (s *Store) SetTitle(id, title string) error {
	if _, err := s.db.Exec(`UPDATE history SET title = ? WHERE id = ?`, title, id); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	return nil
}

// Get returns the entry for id, or ErrNotFound.
func (s *Store) Get(id string) (*Entry, error) {
	var e Entry
	err := s.db.QueryRow(
		`SELECT id, title, repo_url, language, created_at FROM history WHERE id = ?`, id,
	).Scan(&e.ID, &e.Title, &e.RepoURL, &e.Language, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, title, repo_url, language, created_at
		 FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.RepoURL, &e.Language, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the entry for id.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM history WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// RecordGeneration records a freshly generated tutorial from the request
// that produced it.
func (s *Store) RecordGeneration(id string, req tutorial.GenerationRequest) error {
	return s.Record(Entry{
		ID:       id,
		RepoURL:  strings.TrimSpace(req.RepoURL),
		Language: string(req.Language),
	})
}
