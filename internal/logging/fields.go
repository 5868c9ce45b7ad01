package logging

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by the build and the CLI.
const (
	KeyRunID    = "run_id"
	KeyPath     = "path"
	KeyDest     = "dest"
	KeyKind     = "kind"
	KeyDuration = "duration_ms"
	KeyCount    = "count"
	KeyWorkers  = "workers"
	KeyError    = "error"
)

func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr   { return slog.String(KeyPath, p) }
func Dest(p string) slog.Attr   { return slog.String(KeyDest, p) }
func Kind(k string) slog.Attr   { return slog.String(KeyKind, k) }
func Count(n int) slog.Attr     { return slog.Int(KeyCount, n) }
func Workers(n int) slog.Attr   { return slog.Int(KeyWorkers, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Int64(KeyDuration, d.Milliseconds())
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
