// Package logging writes one JSON object per line, the format every component of the
// service uses for startup, migration and domain events.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// Fields is a single log entry before the timestamp and level are filled in.
type Fields map[string]any

// Logger writes JSON lines through slog with "ts" rendered in a fixed location.
// It is safe for concurrent use.
type Logger struct {
	h   slog.Handler
	loc *time.Location
	now func() time.Time
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceAttr(loc),
	})
	return &Logger{h: h, loc: loc, now: time.Now}
}

// replaceAttr renames slog's built-in keys to the service's line format:
// "ts" in loc, lower-case levels, and no "msg" when there is none.
func replaceAttr(loc *time.Location) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}
		switch a.Key {
		case slog.TimeKey:
			return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
		case slog.LevelKey:
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
			}
		case slog.MessageKey:
			if a.Value.String() == "" {
				return slog.Attr{}
			}
		}
		return a
	}
}

var std atomic.Pointer[Logger]

func init() { std.Store(New(os.Stdout, time.UTC)) }

// Default returns the process-wide logger.
func Default() *Logger { return std.Load() }

// SetDefault replaces the process-wide logger. A nil l is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		std.Store(l)
	}
}

// Location is the time zone timestamps are written in.
func (l *Logger) Location() *time.Location { return l.loc }

// Log writes data as one line. "ts" is always set; "level" defaults to "error"
// when status is "error" and to "info" otherwise.
func (l *Logger) Log(data Fields) {
	level := slog.LevelInfo
	if data["status"] == "error" {
		level = slog.LevelError
	}
	if raw, ok := data["level"].(string); ok {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}
	msg, _ := data["msg"].(string)

	keys := make([]string, 0, len(data))
	for k := range data {
		switch k {
		case "level", "msg", "ts":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := slog.NewRecord(l.now(), level, msg, 0)
	for _, k := range keys {
		r.AddAttrs(slog.Any(k, data[k]))
	}
	_ = l.h.Handle(context.Background(), r)
}

func (l *Logger) Info(msg string, data Fields) {
	l.Log(with(data, "info", msg))
}

func (l *Logger) Warn(msg string, data Fields) {
	l.Log(with(data, "warn", msg))
}

func (l *Logger) Error(msg string, err error, data Fields) {
	f := with(data, "error", msg)
	if err != nil {
		f["error"] = err.Error()
	}
	l.Log(f)
}

func with(data Fields, level, msg string) Fields {
	f := make(Fields, len(data)+2)
	for k, v := range data {
		f[k] = v
	}
	f["level"] = level
	f["msg"] = msg
	return f
}
