// Package log holds the process-wide structured logger used by the server,
// the CLI and the importer.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Format selects the line encoding of the global logger.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var encoders = map[Format]func(io.Writer, *slog.HandlerOptions) slog.Handler{
	FormatText: func(w io.Writer, opts *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, opts) },
	FormatJSON: func(w io.Writer, opts *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, opts) },
}

var levelNames = map[string]slog.Level{
	"":        slog.LevelInfo,
	"info":    slog.LevelInfo,
	"debug":   slog.LevelDebug,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// keys maps slog's built-in attribute keys onto the names our log lines use.
var keys = map[string]string{
	slog.TimeKey:    "ts",
	slog.LevelKey:   "level",
	slog.MessageKey: "msg",
}

var (
	minLevel slog.LevelVar

	mu      sync.RWMutex
	current = New(os.Stdout, FormatText)
)

// ParseLevel maps a case-insensitive level name onto a slog level. An empty
// name means info.
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown log level: %s", name)
	}
	return level, nil
}

// ParseFormat accepts "text" (the default) or "json".
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatText, nil
	}
	if _, ok := encoders[format]; !ok {
		return "", fmt.Errorf("unknown log format: %s", name)
	}
	return format, nil
}

// New builds a logger writing format-encoded lines to w. Every logger built
// here shares the level set through SetLevel.
func New(w io.Writer, format Format) *slog.Logger {
	encode, ok := encoders[format]
	if !ok {
		encode = encoders[FormatText]
	}
	return slog.New(encode(w, &slog.HandlerOptions{Level: &minLevel, ReplaceAttr: rewrite}))
}

func rewrite(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	name, ok := keys[attr.Key]
	if !ok {
		return attr
	}
	attr.Key = name
	switch {
	case name == "ts" && attr.Value.Kind() == slog.KindTime:
		attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
	case name == "level":
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	}
	return attr
}

// SetLevel changes the minimum level of every logger built by New.
func SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	minLevel.Set(level)
	return nil
}

// SetFormat swaps the global logger for one writing format to stdout.
func SetFormat(name string) error {
	format, err := ParseFormat(name)
	if err != nil {
		return err
	}
	ReplaceLogger(New(os.Stdout, format))
	return nil
}

// Logger returns the global logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// ReplaceLogger installs l as the global logger. It panics on nil.
func ReplaceLogger(l *slog.Logger) {
	if l == nil {
		panic("log: nil logger provided")
	}
	mu.Lock()
	current = l
	mu.Unlock()
}

type fieldsKey struct{}

// WithFields returns a context whose log lines carry args in front of the
// call-site attributes. Fields accumulate across nested calls.
func WithFields(ctx context.Context, args ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) == 0 {
		return ctx
	}
	prev := fields(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(fieldsKey{}).([]any)
	return f
}

func emit(ctx context.Context, level slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	l := Logger()
	if !l.Enabled(ctx, level) {
		return
	}
	if f := fields(ctx); len(f) > 0 {
		args = append(append(make([]any, 0, len(f)+len(args)), f...), args...)
	}
	l.Log(ctx, level, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) { emit(ctx, slog.LevelDebug, msg, args) }
func Info(ctx context.Context, msg string, args ...any)  { emit(ctx, slog.LevelInfo, msg, args) }
func Warn(ctx context.Context, msg string, args ...any)  { emit(ctx, slog.LevelWarn, msg, args) }
func Error(ctx context.Context, msg string, args ...any) { emit(ctx, slog.LevelError, msg, args) }

// Sync flushes the global handler when it buffers.
func Sync() error {
	if s, ok := Logger().Handler().(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
