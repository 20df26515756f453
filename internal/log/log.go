// Package log is the module's structured logger, a thin wrapper over
// log/slog. Until Init is called it forwards to slog.Default().
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	logger = slog.Default()
)

// Options configures the logger.
type Options struct {
	// Verbose enables debug/info output; otherwise only Warn and Error pass.
	Verbose bool
	// JSONFormat uses JSON output instead of text.
	JSONFormat bool
	// Stderr is the writer for log output (defaults to os.Stderr).
	Stderr io.Writer
}

// Init replaces the package logger according to opts.
func Init(opts Options) {
	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.JSONFormat {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	set(slog.New(h))
}

// SetOutput sends all levels to w as text (for testing).
func SetOutput(w io.Writer) {
	set(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func set(l *slog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a logger with additional context.
func With(args ...any) *slog.Logger { return current().With(args...) }
