package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// PostgresBackend stores the value in a kv table in PostgreSQL.
type PostgresBackend struct {
	db  *pgxpool.Pool
	key string
}

func init() {
	registry.Register(config.BackendPostgres, func(ctx context.Context, cfg config.StorageConfig) (registry.Backend, error) {
		return OpenPostgres(ctx, cfg.Postgres.DSN)
	})
}

// OpenPostgres connects a pool and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to postgres: %w", err)
	}

	b := &PostgresBackend{db: pool, key: HighScoreKey}
	if err := b.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return b, nil
}

func (b *PostgresBackend) migrate(ctx context.Context) error {
	_, err := b.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Get returns the stored value.
func (b *PostgresBackend) Get(ctx context.Context) (string, error) {
	var value string
	err := b.db.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, b.key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", registry.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query value: %w", err)
	}
	return value, nil
}

// Put stores the value, replacing any previous one.
func (b *PostgresBackend) Put(ctx context.Context, value string) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, b.key, value)
	if err != nil {
		return fmt.Errorf("storage: cannot save value: %w", err)
	}
	return nil
}

// Delete removes the stored value.
func (b *PostgresBackend) Delete(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, `DELETE FROM kv WHERE key = $1`, b.key); err != nil {
		return fmt.Errorf("storage: cannot delete value: %w", err)
	}
	return nil
}

// Close closes the pool.
func (b *PostgresBackend) Close() error {
	b.db.Close()
	return nil
}
