// Package storage provides SQLite-based persistence for the world catalog.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// ErrWorldNotFound is returned when no stored world has the requested name.
var ErrWorldNotFound = errors.New("storage: world not found")

// Store manages the SQLite database connection for the world catalog.
type Store struct {
	db *sql.DB
}

// WorldEntry describes a stored world. Data holds the encoded world text and
// is only filled by GetWorld.
type WorldEntry struct {
	ID        int64
	Name      string
	Data      string
	Rows      int // Directory rows
	Levels    int // Total levels across all rows
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS worlds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			data TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			level_count INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveWorld stores a world under the given name, replacing any world
// already stored under it. The world is stored in its encoded form.
func (s *Store) SaveWorld(name string, dir *world.Directory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("storage: world name must not be empty")
	}

	_, err := s.db.Exec(
		`INSERT INTO worlds (name, data, row_count, level_count)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   data = excluded.data,
		   row_count = excluded.row_count,
		   level_count = excluded.level_count,
		   updated_at = CURRENT_TIMESTAMP`,
		name, dir.Encode(), dir.Rows(), dir.LevelCount(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save world %q: %w", name, err)
	}
	return nil
}

// GetWorld retrieves a stored world entry including its data.
func (s *Store) GetWorld(name string) (WorldEntry, error) {
	var e WorldEntry
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, data, row_count, level_count, created_at, updated_at
		 FROM worlds
		 WHERE name = ?`,
		name,
	).Scan(&e.ID, &e.Name, &e.Data, &e.Rows, &e.Levels, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot query world %q: %w", name, err)
	}

	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// LoadWorld retrieves and decodes a stored world.
func (s *Store) LoadWorld(name string) (*world.Directory, error) {
	e, err := s.GetWorld(name)
	if err != nil {
		return nil, err
	}

	dir, err := world.Parse(e.Data)
	if err != nil {
		return nil, fmt.Errorf("storage: stored world %q: %w", name, err)
	}
	return dir, nil
}

// ListWorlds returns every stored world ordered by name, without data.
func (s *Store) ListWorlds() ([]WorldEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, row_count, level_count, created_at, updated_at
		 FROM worlds
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query worlds: %w", err)
	}
	defer rows.Close()

	var entries []WorldEntry
	for rows.Next() {
		var e WorldEntry
		var createdAt, updatedAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Rows, &e.Levels, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteWorld removes a stored world.
func (s *Store) DeleteWorld(name string) error {
	res, err := s.db.Exec("DELETE FROM worlds WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete world %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete world %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	return nil
}

// parseTime converts a DATETIME column, which the driver may return as
// either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
