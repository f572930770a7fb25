package storage

import (
	"context"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

type failingBackend struct{}

var errBackendDown = errors.New("backend down")

func (failingBackend) Get(context.Context) (string, error) { return "", errBackendDown }
func (failingBackend) Put(context.Context, string) error    { return errBackendDown }
func (failingBackend) Delete(context.Context) error         { return errBackendDown }
func (failingBackend) Close() error                         { return nil }

func TestParseHighScore(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
		ok       bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{" 17\n", 17, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12.5", 0, false},
		{"-3", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tc := range tests {
		got, ok := ParseHighScore(tc.raw)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseHighScore(%q) = (%d, %v), expected (%d, %v)", tc.raw, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestHighScoresLoad(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	hs := NewHighScores(backend, config.BackendMemory, 0, quietLogger())

	if got := hs.Load(ctx); got != 0 {
		t.Errorf("Load() on empty store = %d, expected 0", got)
	}

	backend.Put(ctx, "not-a-number")
	if got := hs.Load(ctx); got != 0 {
		t.Errorf("Load() with malformed value = %d, expected 0", got)
	}

	backend.Put(ctx, "-5")
	if got := hs.Load(ctx); got != 0 {
		t.Errorf("Load() with negative value = %d, expected 0", got)
	}

	backend.Put(ctx, "21")
	if got := hs.Load(ctx); got != 21 {
		t.Errorf("Load() = %d, expected 21", got)
	}
}

func TestHighScoresSaveAndClear(t *testing.T) {
	ctx := context.Background()
	hs := NewHighScores(NewMemoryBackend(), config.BackendMemory, 0, quietLogger())

	hs.SaveHighScore(12)
	if got := hs.Load(ctx); got != 12 {
		t.Errorf("Load() after save = %d, expected 12", got)
	}

	hs.ClearHighScore()
	if got := hs.Load(ctx); got != 0 {
		t.Errorf("Load() after clear = %d, expected 0", got)
	}
}

func TestHighScoresNeverLowered(t *testing.T) {
	ctx := context.Background()
	hs := NewHighScores(NewMemoryBackend(), config.BackendMemory, 0, quietLogger())
	hs.SaveHighScore(10)

	// Two sessions that both read 10 on connect finish out of order
	hs.SaveHighScore(20)
	hs.SaveHighScore(12)
	if got := hs.Load(ctx); got != 20 {
		t.Errorf("Load() = %d, expected 20 to survive a later lower save", got)
	}

	hs.SaveHighScore(20)
	if got := hs.Load(ctx); got != 20 {
		t.Errorf("Load() after equal save = %d, expected 20", got)
	}
}

func TestHighScoresConcurrentSaves(t *testing.T) {
	hs := NewHighScores(NewMemoryBackend(), config.BackendMemory, 0, quietLogger())

	var wg sync.WaitGroup
	for score := 1; score <= 50; score++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			hs.SaveHighScore(s)
		}(score)
	}
	wg.Wait()

	if got := hs.Load(context.Background()); got != 50 {
		t.Errorf("Load() = %d, expected 50", got)
	}
}

func TestHighScoresSetLogger(t *testing.T) {
	var before, after bytes.Buffer
	hs := NewHighScores(failingBackend{}, "failing", 0, log.New(&before))

	hs.SaveHighScore(5)
	if !strings.Contains(before.String(), "cannot save best score") {
		t.Fatalf("expected save failure logged, got %q", before.String())
	}

	hs.SetLogger(log.New(&after))
	before.Reset()
	hs.SaveHighScore(6)
	if before.Len() != 0 {
		t.Errorf("old logger still written to: %q", before.String())
	}
	if after.Len() == 0 {
		t.Error("new logger not used")
	}
}

func TestHighScoresBackendFailure(t *testing.T) {
	hs := NewHighScores(failingBackend{}, "failing", 0, quietLogger())

	if got := hs.Load(context.Background()); got != 0 {
		t.Errorf("Load() with failing backend = %d, expected 0", got)
	}
	// Must not panic or block
	hs.SaveHighScore(5)
	hs.ClearHighScore()
}

func TestOpenSQLiteViaRegistry(t *testing.T) {
	cfg := config.StorageConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "snake.db")},
	}

	hs, err := Open(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer hs.Close()

	if hs.Backend() != config.BackendSQLite {
		t.Errorf("Backend() = %q", hs.Backend())
	}
	hs.SaveHighScore(8)
	if got := hs.Load(context.Background()); got != 8 {
		t.Errorf("Load() = %d, expected 8", got)
	}
}

func TestOpenOrMemoryFallback(t *testing.T) {
	cfg := config.StorageConfig{Backend: "carrier-pigeon"}

	if _, err := Open(context.Background(), cfg, quietLogger()); err == nil {
		t.Fatal("Open() should fail for an unknown backend")
	}

	hs := OpenOrMemory(context.Background(), cfg, quietLogger())
	defer hs.Close()

	if hs.Backend() != config.BackendMemory {
		t.Errorf("Backend() = %q, expected memory fallback", hs.Backend())
	}
	hs.SaveHighScore(3)
	if got := hs.Load(context.Background()); got != 3 {
		t.Errorf("Load() = %d, expected 3", got)
	}
}
