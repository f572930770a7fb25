// Package storage persists the best score over pluggable backends.
// Backends register with the registry in init(); sqlite uses the pure-Go
// modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// HighScoreKey is the key the best score is stored under in kv tables.
const HighScoreKey = "high_score"

// Open resolves the configured backend and wraps it in HighScores.
func Open(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (*HighScores, error) {
	backend, err := registry.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s backend: %w", cfg.Backend, err)
	}
	return NewHighScores(backend, cfg.Backend, cfg.Timeout, logger), nil
}

// OpenOrMemory opens the configured backend, falling back to an in-memory
// store with a warning when it is unavailable.
func OpenOrMemory(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) *HighScores {
	hs, err := Open(ctx, cfg, logger)
	if err == nil {
		return hs
	}

	logger.Warn("best score will not be persisted", "backend", cfg.Backend, "err", err)
	return NewHighScores(NewMemoryBackend(), config.BackendMemory, cfg.Timeout, logger)
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
