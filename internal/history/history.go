package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"playlistformatter/internal/playlist"
)

// Entry records one exported playlist.
type Entry struct {
	ID         string
	Name       string
	Kind       string
	SourcePath string
	OutputPath string
	Tracks     int
	Total      time.Duration
	CreatedAt  time.Time
}

// NewEntry describes the export of doc to outputPath.
func NewEntry(doc *playlist.Document, outputPath string) Entry {
	return Entry{
		Name:       doc.Name(),
		Kind:       doc.Kind().String(),
		SourcePath: filepath.Join(doc.Path.Dir, doc.Path.Base+doc.Path.Ext),
		OutputPath: outputPath,
		Tracks:     len(doc.Tracks),
		Total:      doc.TotalDuration(),
	}
}

// Store keeps the export history in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			source_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			tracks INTEGER NOT NULL,
			total_seconds INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS exports_created_at ON exports (created_at);`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate history schema: %w", err)
		}
	}
	return nil
}

// Add stores e, filling in its ID and creation time when unset.
func (s *Store) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, name, kind, source_path, output_path, tracks, total_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Kind, e.SourcePath, e.OutputPath, e.Tracks,
		int64(e.Total/time.Second), e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, source_path, output_path, tracks, total_seconds, created_at
		 FROM exports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var totalSeconds, createdAt int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Kind, &e.SourcePath, &e.OutputPath, &e.Tracks, &totalSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Total = time.Duration(totalSeconds) * time.Second
		e.CreatedAt = time.Unix(0, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
