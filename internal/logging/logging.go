// Package logging builds charmbracelet/log loggers from configuration.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// New creates a logger writing to stderr.
func New(cfg config.LogConfig, prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, cfg, prefix)
}

// NewWithWriter creates a logger writing to w.
// Unknown levels fall back to info and unknown formats to text.
func NewWithWriter(w io.Writer, cfg config.LogConfig, prefix string) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
		Formatter:       formatter(cfg.Format),
	})
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything. Useful in tests and
// inside the terminal UI, where stderr output would corrupt the screen.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
