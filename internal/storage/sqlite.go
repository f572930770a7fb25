package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// SQLiteBackend stores the value in a kv table of a SQLite database.
type SQLiteBackend struct {
	db  *sql.DB
	key string
}

func init() {
	registry.Register(config.BackendSQLite, func(_ context.Context, cfg config.StorageConfig) (registry.Backend, error) {
		return OpenSQLite(cfg.SQLite.Path)
	})
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	b := &SQLiteBackend{db: db, key: HighScoreKey}

	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return b, nil
}

// migrate creates the database schema if it doesn't exist.
func (b *SQLiteBackend) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := b.db.Exec(schema)
	return err
}

// Get returns the stored value.
func (b *SQLiteBackend) Get(ctx context.Context) (string, error) {
	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", b.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", registry.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query value: %w", err)
	}
	return value, nil
}

// Put stores the value, replacing any previous one.
func (b *SQLiteBackend) Put(ctx context.Context, value string) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		b.key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save value: %w", err)
	}
	return nil
}

// Delete removes the stored value.
func (b *SQLiteBackend) Delete(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", b.key); err != nil {
		return fmt.Errorf("storage: cannot delete value: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
