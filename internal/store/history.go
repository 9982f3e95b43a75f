// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     store
// Description: SQLite index of finished transcripts
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/transkriptor/internal/settings"
)

// DefaultHistoryLimit is used by List when limit <= 0
const DefaultHistoryLimit = 20

// PreviewLength caps the stored text preview (runes)
const PreviewLength = 120

// Entry is one indexed transcription job
type Entry struct {
	JobID          string    `json:"job_id"`
	Source         string    `json:"source"`
	ResponseFormat string    `json:"response_format"`
	TranscriptPath string    `json:"transcript_path"`
	AudioPath      string    `json:"audio_path,omitempty"`
	Preview        string    `json:"preview"`
	CreatedAt      time.Time `json:"created_at"`
}

// History indexes transcripts in a SQLite database
type History struct {
	db *sql.DB
	mu sync.RWMutex
}

// DefaultHistoryPath returns <appdir>/history.db
func DefaultHistoryPath() string {
	return filepath.Join(settings.AppDir(), "history.db")
}

// OpenHistory opens (and creates) the history database at path
func OpenHistory(path string) (*History, error) {
	if path == "" {
		path = DefaultHistoryPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	h := &History{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return h, nil
}

func (h *History) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcripts (
		job_id TEXT PRIMARY KEY,
		source TEXT NOT NULL DEFAULT '',
		response_format TEXT NOT NULL DEFAULT '',
		transcript_path TEXT NOT NULL,
		audio_path TEXT NOT NULL DEFAULT '',
		preview TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transcripts_created ON transcripts(created_at DESC);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Record stores e. Re-recording a job id replaces the previous row.
func (h *History) Record(ctx context.Context, e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e.JobID == "" {
		return fmt.Errorf("job ID is required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO transcripts (job_id, source, response_format, transcript_path, audio_path, preview, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.JobID, e.Source, e.ResponseFormat, e.TranscriptPath, e.AudioPath, Preview(e.Preview), e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record transcript: %w", err)
	}

	return nil
}

// List returns the newest entries first
func (h *History) List(ctx context.Context, limit int) ([]Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT job_id, source, response_format, transcript_path, audio_path, preview, created_at
		FROM transcripts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.JobID, &e.Source, &e.ResponseFormat, &e.TranscriptPath, &e.AudioPath, &e.Preview, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		e.CreatedAt = e.CreatedAt.Local()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database
func (h *History) Close() error {
	return h.db.Close()
}

// Preview shortens text to a single line of at most PreviewLength runes
func Preview(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' || r == '\r' {
			runes[i] = ' '
		}
	}
	if len(runes) > PreviewLength {
		return string(runes[:PreviewLength-1]) + "…"
	}
	return string(runes)
}
