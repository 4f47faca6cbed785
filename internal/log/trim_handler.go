package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// DefaultMaxURLLen is the display length URL attributes are trimmed to.
// 58 characters keeps a full progress line inside an 80-column terminal.
const DefaultMaxURLLen = 58

// urlKeys are the attribute keys whose string values get trimmed.
var urlKeys = map[string]bool{
	"url":      true,
	"seed":     true,
	"page":     true,
	"item":     true,
	"seed_url": true,
}

// TrimHandler wraps an slog.Handler and shortens URL-valued attributes
// before passing records through. It works with any underlying handler
// (text, JSON) and composes with standard slog APIs.
type TrimHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewTrimHandler creates a TrimHandler wrapping the given handler.
// A nil handler falls back to slog.Default's handler; a non-positive
// maxLen falls back to DefaultMaxURLLen.
func NewTrimHandler(handler slog.Handler, maxLen int) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxURLLen
	}
	return &TrimHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's URL attributes and delegates to the
// underlying handler.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})
	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added,
// trimmed first.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// trimAttr shortens a single attribute, recursing into groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString && urlKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Shorten(a.Value.String(), h.maxLen))
	}

	return a
}

// Shorten limits a string to max characters, replacing the middle with
// "..." so both the head and the tail stay visible.
func Shorten(s string, max int) string {
	if len(s) <= max || max < 5 {
		return s
	}
	keep := (max - 3) / 2
	return s[:keep] + "..." + s[len(s)-keep:]
}

// NewProgressLogger creates the logger used by the CLI: a text handler
// on w wrapped with URL trimming. Verbose enables debug level;
// otherwise info level, so per-unit progress lines are visible by
// default.
func NewProgressLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTrimHandler(textHandler, DefaultMaxURLLen))
}
