package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"style-watcher/internal/models"
	"style-watcher/pkg/config"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    input_text TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    title TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
`

// New opens the history database in the user's config directory.
func New() (*DB, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return Open(filepath.Join(dir, "history.db"))
}

// Open opens or creates the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// AddEntry stores a finished query. A zero CreatedAt is set to now.
func (d *DB) AddEntry(entry models.HistoryEntry) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	res, err := d.db.Exec(`
		INSERT INTO history (input_text, raw_text, title, record_count, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.InputText, entry.RawText, entry.Title,
		entry.RecordCount, entry.Source, entry.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert history entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read history id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (d *DB) Recent(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(`
		SELECT id, input_text, raw_text, title, record_count, source, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.InputText, &e.RawText, &e.Title,
			&e.RecordCount, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Last returns the newest entry; ok is false when the history is empty.
func (d *DB) Last() (entry models.HistoryEntry, ok bool, err error) {
	row := d.db.QueryRow(`
		SELECT id, input_text, raw_text, title, record_count, source, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)

	err = row.Scan(&entry.ID, &entry.InputText, &entry.RawText, &entry.Title,
		&entry.RecordCount, &entry.Source, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryEntry{}, false, nil
	}
	if err != nil {
		return models.HistoryEntry{}, false, fmt.Errorf("failed to read last history entry: %w", err)
	}
	return entry, true, nil
}

// Cleanup deletes entries older than olderThan and returns how many went.
func (d *DB) Cleanup(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := d.db.Exec("DELETE FROM history WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
