package raven

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-raven/internal/assets"
	"github.com/alnah/go-raven/internal/logging"
	"github.com/alnah/go-raven/internal/pipeline"
)

// Site builds one project. Syntax definitions and the theme are loaded once
// by New and shared read-only by every build. A Site is safe for
// concurrent use, though concurrent builds write to the same destination.
type Site struct {
	cfg      *Config
	root     string
	srcDir   string
	destDir  string
	logger   *slog.Logger
	progress ProgressFunc
	workers  int

	transformer *pipeline.Transformer
	post        pipeline.PostProcessor
	themeCSS    string
}

// New prepares a Site for the project in root. Relative paths in cfg
// resolve against root. Failing to load syntaxes or themes, or naming a
// theme that does not exist, is an error.
func New(cfg *Config, root string, opts ...Option) (*Site, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Site{
		cfg:     cfg,
		root:    root,
		logger:  logging.Discard(),
		workers: cfg.Workers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srcDir = resolvePath(root, cfg.Source)
	s.destDir = resolvePath(root, cfg.Dest)

	syntaxes, err := pipeline.LoadSyntaxes(resolvePath(root, cfg.Syntaxes))
	if err != nil {
		return nil, err
	}
	themes, err := pipeline.LoadThemes(resolvePath(root, cfg.CustomSyntaxThemes))
	if err != nil {
		return nil, err
	}
	style, err := pipeline.SelectTheme(themes, cfg.SyntaxTheme)
	if err != nil {
		return nil, err
	}

	hl := pipeline.NewHighlighter(syntaxes, style)
	if cfg.HighlightClasses() {
		if s.themeCSS, err = hl.ThemeCSS(); err != nil {
			return nil, err
		}
	}

	s.transformer = pipeline.NewTransformer(hl, pipeline.WithClasses(cfg.HighlightClasses()))
	s.post = pipeline.NewPostProcessor(cfg.Minify())
	return s, nil
}

// SourceDir returns the resolved source directory.
func (s *Site) SourceDir() string { return s.srcDir }

// DestDir returns the resolved destination directory.
func (s *Site) DestDir() string { return s.destDir }

// Scan returns the source files of the site.
func (s *Site) Scan() []SourceFile {
	return Scan(s.srcDir, s.logger)
}

// Run scans the source directory and builds every file found.
func (s *Site) Run(ctx context.Context, force bool) (*Report, error) {
	return s.Build(ctx, s.Scan(), force)
}

// Build runs one unit per file and waits for all of them. A failing unit
// is recorded in the report and does not affect the others. Files that
// would write the same output path all fail with ErrDestCollision and are
// never built. Build fails
// before scheduling anything when files holds no markdown page, and returns
// the context error (with the partial report) when ctx is canceled.
func (s *Site) Build(ctx context.Context, files []SourceFile, force bool) (*Report, error) {
	if countKind(files, KindMarkdown) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFiles, s.srcDir)
	}

	start := time.Now()
	r := &run{
		site:       s,
		id:         uuid.NewString(),
		force:      force,
		total:      len(files),
		integrator: pipeline.NewIntegrator(s.cfg, s.root, assets.NewCache(), s.themeCSS),
	}
	r.logger = s.logger.With(logging.RunID(r.id))

	r.logger.Info("build started",
		logging.Count(len(files)),
		logging.Workers(s.workers),
		slog.Bool("force", force),
	)

	results := make([]UnitResult, len(files))
	collided := r.failCollisions(files, results)

	var g errgroup.Group
	g.SetLimit(ResolveWorkers(s.workers))
	for i, f := range files {
		if collided[i] {
			continue
		}
		g.Go(func() error {
			results[i] = r.unit(ctx, f)
			return nil
		})
	}
	_ = g.Wait() // units report through results, never through the group

	report := summarize(r.id, results, time.Since(start))
	r.logger.Info("build finished",
		slog.Int("built", report.Built),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", len(report.Failed)),
		logging.Duration(report.Duration),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func summarize(id string, results []UnitResult, d time.Duration) *Report {
	report := &Report{RunID: id, Total: len(results), Results: results, Duration: d}
	for _, res := range results {
		switch {
		case res.Err != nil:
			report.Failed = append(report.Failed, res)
		case res.Skipped:
			report.Skipped++
		default:
			report.Built++
		}
	}
	return report
}

// failCollisions fails every file whose output path is shared with another
// file, so no two units write the same destination. It returns the indexes
// it failed.
func (r *run) failCollisions(files []SourceFile, results []UnitResult) map[int]bool {
	byDest := make(map[string][]int, len(files))
	for i, f := range files {
		if f.Kind == KindIgnored {
			continue
		}
		dest := f.DestPath(r.site.destDir)
		byDest[dest] = append(byDest[dest], i)
	}

	collided := make(map[int]bool)
	for dest, idx := range byDest {
		if len(idx) < 2 {
			continue
		}
		sources := make([]string, len(idx))
		for j, i := range idx {
			sources[j] = files[i].Path
		}
		for _, i := range idx {
			collided[i] = true
			results[i] = UnitResult{
				Source: files[i].Path,
				Dest:   dest,
				Kind:   files[i].Kind,
				Err:    fmt.Errorf("%w: %s: %s", ErrDestCollision, dest, strings.Join(sources, ", ")),
			}
			r.finish(results[i])
		}
	}
	return collided
}

// run holds the state of a single Build call.
type run struct {
	site       *Site
	id         string
	force      bool
	total      int
	done       atomic.Int64
	logger     *slog.Logger
	integrator *pipeline.Integrator
}

// finish logs res and reports progress for successful units.
func (r *run) finish(res UnitResult) {
	if res.Err != nil {
		r.logger.Error("page failed",
			logging.Path(res.Source),
			logging.Kind(res.Kind.String()),
			logging.Error(res.Err),
		)
		return
	}

	msg := "page built"
	if res.Skipped {
		msg = "page up to date"
	}
	r.logger.Debug(msg,
		logging.Path(res.Source),
		logging.Dest(res.Dest),
		logging.Duration(res.Duration),
	)

	done := r.done.Add(1)
	if r.site.progress != nil {
		r.site.progress(int(done), r.total)
	}
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
