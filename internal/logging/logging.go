// Package logging configures the process-wide slog logger.
//
// Diagnostics always go to stderr so they never mix with query results on
// stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// Init builds a logger from cfg, installs it as the slog default and
// returns it. A nil writer means stderr.
func Init(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	l := slog.New(handler)

	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
	return l, nil
}

// Get returns the global logger, falling back to warn-level text on stderr
// if Init has not been called.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return logger
}

// ParseLevel converts a level name into a slog.Level. The empty string is
// treated as warn.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
