package infra

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a JSON logger at the given level that drops
// client-disconnect noise.
func NewLogger(w io.Writer, level string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(NewBrokenPipeFilter(h))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// BrokenPipeFilter is a slog.Handler that discards records mentioning a
// broken pipe, which only means the client went away mid-response.
type BrokenPipeFilter struct {
	next slog.Handler
}

// NewBrokenPipeFilter wraps next.
func NewBrokenPipeFilter(next slog.Handler) *BrokenPipeFilter {
	return &BrokenPipeFilter{next: next}
}

func (f *BrokenPipeFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.next.Enabled(ctx, level)
}

func (f *BrokenPipeFilter) Handle(ctx context.Context, r slog.Record) error {
	if isBrokenPipe(r.Message) {
		return nil
	}
	drop := false
	r.Attrs(func(a slog.Attr) bool {
		if isBrokenPipe(a.Value.String()) {
			drop = true
			return false
		}
		return true
	})
	if drop {
		return nil
	}
	return f.next.Handle(ctx, r)
}

func (f *BrokenPipeFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BrokenPipeFilter{next: f.next.WithAttrs(attrs)}
}

func (f *BrokenPipeFilter) WithGroup(name string) slog.Handler {
	return &BrokenPipeFilter{next: f.next.WithGroup(name)}
}

func isBrokenPipe(s string) bool {
	return strings.Contains(strings.ToLower(s), "broken pipe")
}
