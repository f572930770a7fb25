package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

const defaultTimeout = 2 * time.Second

// HighScores reads and writes the best score through a backend.
// Writes are best-effort: failures are logged and never surface to the game.
type HighScores struct {
	mu      sync.Mutex // serializes read-compare-write across sessions
	backend registry.Backend
	name    string
	timeout time.Duration
	logger  *log.Logger
}

// NewHighScores wraps a backend. A non-positive timeout uses the default.
func NewHighScores(backend registry.Backend, name string, timeout time.Duration, logger *log.Logger) *HighScores {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HighScores{
		backend: backend,
		name:    name,
		timeout: timeout,
		logger:  logger,
	}
}

// Backend returns the name of the underlying backend.
func (h *HighScores) Backend() string {
	return h.name
}

// Load returns the stored best score. Missing, malformed or negative
// values, and backend errors, all yield 0.
func (h *HighScores) Load(ctx context.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.load(ctx)
}

func (h *HighScores) load(ctx context.Context) int {
	raw, err := h.backend.Get(ctx)
	if err != nil {
		if !errors.Is(err, registry.ErrNotFound) {
			h.logger.Warn("cannot read best score", "backend", h.name, "err", err)
		}
		return 0
	}

	score, ok := ParseHighScore(raw)
	if !ok {
		h.logger.Warn("ignoring malformed best score", "backend", h.name, "value", raw)
	}
	return score
}

// SaveHighScore stores score as the new best unless the stored value is
// already at least as high.
func (h *HighScores) SaveHighScore(score int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if current := h.load(ctx); current >= score {
		h.logger.Debug("best score not raised", "backend", h.name, "score", score, "stored", current)
		return
	}

	if err := h.backend.Put(ctx, strconv.Itoa(score)); err != nil {
		h.logger.Error("cannot save best score", "backend", h.name, "score", score, "err", err)
		return
	}
	h.logger.Debug("best score saved", "backend", h.name, "score", score)
}

// ClearHighScore removes the stored best score.
func (h *HighScores) ClearHighScore() {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.backend.Delete(ctx); err != nil {
		h.logger.Error("cannot clear best score", "backend", h.name, "err", err)
		return
	}
	h.logger.Debug("best score cleared", "backend", h.name)
}

// SetLogger replaces the logger, e.g. once a terminal UI owns stderr.
func (h *HighScores) SetLogger(logger *log.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger = logger
}

// Close closes the backend.
func (h *HighScores) Close() error {
	return h.backend.Close()
}

// ParseHighScore parses a stored value. It reports false and returns 0
// when the value is not a non-negative integer.
func ParseHighScore(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
