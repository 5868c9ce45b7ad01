package raven

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-raven/internal/pipeline"
)

// PageInfo is the metadata embedded in a markdown page.
type PageInfo = pipeline.PageInfo

// SourceKind classifies a source file by extension.
type SourceKind int

// Source kinds.
const (
	KindIgnored SourceKind = iota
	KindMarkdown
	KindHTML
	KindStylesheet
)

// String returns the kind name used in logs.
func (k SourceKind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindHTML:
		return "html"
	case KindStylesheet:
		return "stylesheet"
	default:
		return "ignored"
	}
}

// KindOf classifies path by its extension (case-insensitive).
func KindOf(path string) SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".html", ".htm":
		return KindHTML
	case ".css":
		return KindStylesheet
	default:
		return KindIgnored
	}
}

// SourceFile is a file discovered under the source directory.
type SourceFile struct {
	Path string     // path as found by the scan, rooted at the scanned directory
	Rel  string     // path relative to the scanned directory
	Kind SourceKind // classification by extension
}

// DestPath returns where f is written under destDir. Markdown pages get an
// .html extension; other kinds keep their name.
func (f SourceFile) DestPath(destDir string) string {
	rel := f.Rel
	if f.Kind == KindMarkdown {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	}
	return filepath.Join(destDir, rel)
}

// UnitResult is the outcome of building one source file.
type UnitResult struct {
	Source   string
	Dest     string
	Kind     SourceKind
	Skipped  bool // output was up to date
	Err      error
	Duration time.Duration
}

// Report summarizes a build run.
type Report struct {
	RunID    string
	Total    int
	Built    int
	Skipped  int
	Failed   []UnitResult
	Results  []UnitResult // one per source file, in input order
	Duration time.Duration
}

// OK reports whether every unit succeeded.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// ProgressFunc is called after each unit that completes successfully.
// done counts successful units so far; total is the number of units in
// the run. It may be called concurrently.
type ProgressFunc func(done, total int)

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger used for build events. The default discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProgress registers fn to be called as units complete.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Site) {
		s.progress = fn
	}
}

// WithWorkers overrides generation.workers. 0 runs every unit at once.
// Panics if n is negative (programmer error).
func WithWorkers(n int) Option {
	if n < 0 {
		panic("raven: WithWorkers count must not be negative")
	}
	return func(s *Site) {
		s.workers = n
	}
}
