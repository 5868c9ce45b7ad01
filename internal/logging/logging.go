// Package logging builds the slog loggers used by the raven CLI: a colored,
// human-readable handler for terminals and JSON lines for machines.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Options configures New.
type Options struct {
	Level   slog.Level
	JSON    bool
	NoColor bool
}

// New returns a logger writing to w. A nil w writes to os.Stderr.
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(NewPrettyHandler(w, hopts, opts.NoColor))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
