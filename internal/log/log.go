// Package log wires the solver's structured logging. Every pipeline stage
// tags its logger with a "section" attribute (eg "solve.simplify"); this
// package filters debug/info records down to the sections the caller
// enabled, while warnings and above always pass through regardless of section.
package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

var enabledSections []string

var level = new(slog.LevelVar)

var LoggerOpts = &slog.HandlerOptions{
	Level: level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

// SetLevel adjusts the minimum level DefaultLogger emits, regardless of section.
func SetLevel(l slog.Level) { level.Set(l) }

// EnableSections restricts debug/info output to the given "section" prefixes.
// An empty set (the default) disables the filter, so every record passes;
// warnings and errors are never filtered.
func EnableSections(sections ...string) { enabledSections = sections }

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn || len(enabledSections) == 0 {
		return f.underlying.Handle(ctx, record)
	}

	var attrs []slog.Attr
	record.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})
	section, hasSection := sectionAttr(attrs)
	if !hasSection || !matchesEnabledSection(section) {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func sectionAttr(attrs []slog.Attr) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == "section" {
			return attr.Value.String(), true
		}
	}
	return "", false
}

func matchesEnabledSection(section string) bool {
	return slices.ContainsFunc(enabledSections, func(prefix string) bool {
		return strings.HasPrefix(section, prefix)
	})
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &filteringHandler{underlying: f.underlying.WithAttrs(attrs)}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{underlying: f.underlying.WithGroup(name)}
}
