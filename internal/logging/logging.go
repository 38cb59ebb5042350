// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Common attribute keys.
const (
	FieldComponent = "component"
	FieldError     = "error"
)

// New returns a slog logger writing to w in "text" or "json" format.
// A nil w means stdout.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Component returns l tagged with a component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	return l.With(FieldComponent, name)
}
