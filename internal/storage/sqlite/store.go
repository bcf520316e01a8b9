// Package sqlite provides a SQLite-backed transcript and telemetry store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/quietpath/duelsense/internal/errors"
	"github.com/quietpath/duelsense/internal/platform/storage/sqlitemigrate"
	"github.com/quietpath/duelsense/internal/storage"
	"github.com/quietpath/duelsense/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists duelsense state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.TranscriptStore = (*Store)(nil)
var _ storage.TelemetryStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendAnnouncement inserts one transcript row.
func (s *Store) AppendAnnouncement(ctx context.Context, entry storage.TranscriptEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	if strings.TrimSpace(entry.Text) == "" {
		return fmt.Errorf("announcement text is required")
	}
	timestamp := entry.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO transcript (created_at, category, text, priority) VALUES (?, ?, ?, ?)",
		toMillis(timestamp), entry.Category, entry.Text, entry.Priority,
	)
	if err != nil {
		return fmt.Errorf("insert transcript row: %w", err)
	}
	return nil
}

// ListRecentAnnouncements returns the newest transcript rows, newest first.
func (s *Store) ListRecentAnnouncements(ctx context.Context, limit int) ([]storage.TranscriptEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	if limit < 1 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT created_at, category, text, priority FROM transcript ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query transcript rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []storage.TranscriptEntry
	for rows.Next() {
		var createdAt int64
		var entry storage.TranscriptEntry
		if err := rows.Scan(&createdAt, &entry.Category, &entry.Text, &entry.Priority); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		entry.Timestamp = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcript rows: %w", err)
	}
	return entries, nil
}

// AppendTelemetryEvent inserts one telemetry row.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return apperrors.New(apperrors.CodeStorageNotConfigured, "storage is not configured")
	}
	timestamp := evt.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO telemetry (created_at, severity, kind, detail) VALUES (?, ?, ?, ?)",
		toMillis(timestamp), evt.Severity, evt.Kind, evt.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert telemetry row: %w", err)
	}
	return nil
}
