package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

const (
	colorDebug = "#6c7086"
	colorInfo  = "#a6adc8"
	colorWarn  = "#f9e2af"
	colorError = "#f38ba8"
)

// PrettyHandler is a slog.Handler producing one colored line per record:
// the message followed by key=value attributes.
type PrettyHandler struct {
	mu    *sync.Mutex
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w. Colors are dropped
// when noColor is set or when w is not a terminal.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, noColor bool) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	var outOpts []termenv.OutputOption
	if noColor {
		outOpts = append(outOpts, termenv.WithProfile(termenv.Ascii))
	}

	return &PrettyHandler{
		mu:    &sync.Mutex{},
		out:   termenv.NewOutput(w, outOpts...),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var prefix, hex string
	switch {
	case r.Level >= slog.LevelError:
		prefix, hex = "error: ", colorError
	case r.Level >= slog.LevelWarn:
		prefix, hex = "warning: ", colorWarn
	case r.Level >= slog.LevelInfo:
		hex = colorInfo
	default:
		prefix, hex = "debug: ", colorDebug
	}

	parts := make([]string, 0, 1+len(h.attrs)+r.NumAttrs())
	parts = append(parts, prefix+r.Message)
	for _, attr := range h.attrs {
		parts = append(parts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(h.group, attr))
		return true
	})

	line := h.out.String(strings.Join(parts, " ")).Foreground(h.out.Color(hex)).String()

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(line + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		mu:    h.mu,
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		mu:    h.mu,
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	val := attr.Value.Resolve().String()
	if strings.ContainsAny(val, " \t\n\"") {
		val = `"` + strings.ReplaceAll(val, `"`, `\"`) + `"`
	}
	return key + "=" + val
}
