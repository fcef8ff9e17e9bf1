package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"subreel/internal/config"
)

// Session statuses recorded in history.
const (
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
	StatusFailed    = "failed"
)

// Record is one finished (or failed) recording session.
type Record struct {
	ID             int64
	SessionID      string
	StartedAt      time.Time
	TranscriptPath string
	BackgroundPath string
	AudioPath      string
	OutputPath     string
	Frames         int
	Duration       float64
	Status         string
	ErrorMessage   string
}

// Store persists session history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the history database and initializes the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.HistoryDB
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Add inserts a session record and returns its row ID.
func (s *Store) Add(ctx context.Context, rec Record) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (
            session_id, started_at, transcript_path, background_path,
            audio_path, output_path, frames, duration, status, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.TranscriptPath,
		rec.BackgroundPath,
		rec.AudioPath,
		rec.OutputPath,
		rec.Frames,
		rec.Duration,
		rec.Status,
		rec.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session id: %w", err)
	}
	return id, nil
}

// Clear removes every recorded session.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, fmt.Errorf("clear sessions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear sessions: %w", err)
	}
	return removed, nil
}

// List returns the most recent sessions, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, started_at, transcript_path, background_path,
            audio_path, output_path, frames, duration, status, error_message
        FROM sessions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var startedAt string
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &startedAt, &rec.TranscriptPath, &rec.BackgroundPath,
			&rec.AudioPath, &rec.OutputPath, &rec.Frames, &rec.Duration, &rec.Status, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
			rec.StartedAt = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
