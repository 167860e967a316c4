// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Records go through log/slog: a tint
// console handler and, optionally, a rotating JSON file. The logger is
// safe for concurrent use.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps a config string to a Level. Unknown values yield LevelNormal.
func ParseLevel(s string) Level {
	switch s {
	case "off", "quiet", "none":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Option configures optional sinks.
type Option func(*options)

type options struct {
	file       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	noColor    bool
}

// WithFile additionally writes JSON records to a size-rotated file.
func WithFile(path string, maxSizeMB, maxBackups int) Option {
	return func(o *options) {
		o.file = path
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
	}
}

// WithNoColor disables ANSI colors on the console sink.
func WithNoColor() Option {
	return func(o *options) { o.noColor = true }
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	lv     *slog.LevelVar
	sl     *slog.Logger
	closer io.Closer
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used. Passing io.Discard together with
// WithFile keeps the console quiet while the TUI owns the terminal.
func New(level Level, out io.Writer, opts ...Option) *Logger {
	if out == nil {
		out = os.Stderr
	}
	o := options{maxSizeMB: 10, maxBackups: 3, maxAgeDays: 14}
	for _, opt := range opts {
		opt(&o)
	}

	lv := new(slog.LevelVar)
	lv.Set(slogLevel(level))

	var handlers []slog.Handler
	if out != io.Discard {
		handlers = append(handlers, tint.NewHandler(out, &tint.Options{
			Level:      lv,
			TimeFormat: "15:04:05",
			NoColor:    o.noColor,
		}))
	}

	l := &Logger{level: level, lv: lv}
	if o.file != "" {
		if dir := filepath.Dir(o.file); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		lj := &lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			MaxAge:     o.maxAgeDays,
			LocalTime:  true,
		}
		handlers = append(handlers, slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: lv}))
		l.closer = lj
	}

	l.sl = slog.New(&multiHandler{handlers: handlers})
	return l
}

// Close flushes and closes the rotating file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Slog exposes the underlying structured logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger { return l.sl }

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.lv.Set(slogLevel(level))
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelVerbose, slog.LevelDebug, format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelNormal, slog.LevelInfo, format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelNormal, slog.LevelWarn, format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelNormal, slog.LevelError, format, args)
}

func (l *Logger) log(threshold Level, sl slog.Level, format string, args []any) {
	l.mu.RLock()
	level := l.level
	l.mu.RUnlock()
	if level < threshold {
		return
	}
	l.sl.Log(context.Background(), sl, fmt.Sprintf(format, args...))
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelVerbose:
		return slog.LevelDebug
	case LevelOff:
		// Above every level we emit.
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// multiHandler fans out log records to multiple slog handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
