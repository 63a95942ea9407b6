// Package logging configures runtime JSONL logging output.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Runtime bundles the configured logger and its open file handle lifecycle.
type Runtime struct {
	Logger *slog.Logger
	Path   string
	closer io.Closer
}

// Close flushes and closes the logger output sink.
func (r Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Discard is a runtime that drops every record.
func Discard() Runtime {
	return Runtime{Logger: slog.New(slog.DiscardHandler)}
}

// New opens today's JSONL log file under dir.
func New(dir string) (Runtime, error) {
	return open(dir, time.Now())
}

func open(dir string, now time.Time) (Runtime, error) {
	if strings.TrimSpace(dir) == "" {
		return Runtime{}, errors.New("log directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Runtime{}, err
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Runtime{}, err
	}

	// Debug keeps the soft config failures that never reach the terminal.
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)
	return Runtime{Logger: logger, Path: path, closer: f}, nil
}

// FileName is the daily log file name for t.
func FileName(t time.Time) string {
	return "vtrans-" + t.Format("20060102") + ".jsonl"
}
