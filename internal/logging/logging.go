// Package logging provides structured logging infrastructure for ssimtune.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level aliases for slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger wraps slog.Logger with optional file output.
type Logger struct {
	*slog.Logger
	file *os.File
}

// Setup creates a logger for one optimization run. Verbose mode enables
// debug-level logging and mirrors log output to stderr; logFilePath, when
// non-empty, appends to the given file. With neither, output is discarded.
func Setup(verbose bool, logFilePath string) (*Logger, error) {
	var writers []io.Writer
	var file *os.File

	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
		}
		file = f
		writers = append(writers, f)
	}

	if verbose {
		writers = append(writers, os.Stderr)
	}

	var output io.Writer = io.Discard
	if len(writers) == 1 {
		output = writers[0]
	} else if len(writers) > 1 {
		output = io.MultiWriter(writers...)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})

	return &Logger{
		Logger: slog.New(handler),
		file:   file,
	}, nil
}

// New creates a logger writing to the given writer at the given level.
// Useful for tests and library embedding.
func New(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// Discard returns a logger that drops all output.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError)
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// WithPrefix returns a new logger with the given prefix as a group.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		Logger: l.WithGroup(prefix),
		file:   l.file,
	}
}
