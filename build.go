package raven

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-raven/internal/assets"
	"github.com/alnah/go-raven/internal/fileutil"
	"github.com/alnah/go-raven/internal/pipeline"
)

// unit builds one source file. Panics are converted into a failed result so
// siblings keep running.
func (r *run) unit(ctx context.Context, f SourceFile) (res UnitResult) {
	start := time.Now()
	res = UnitResult{Source: f.Path, Dest: f.DestPath(r.site.destDir), Kind: f.Kind}

	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("%w: %s: %v", ErrUnitPanic, f.Path, p)
		}
		res.Duration = time.Since(start)
		r.finish(res)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	switch f.Kind {
	case KindMarkdown:
		res.Skipped, res.Err = r.buildPage(f.Path, res.Dest)
	case KindHTML:
		res.Err = r.buildHTML(f.Path, res.Dest)
	case KindStylesheet:
		res.Err = copyFile(f.Path, res.Dest)
	default:
		res.Skipped = true
	}
	return res
}

// buildPage renders a markdown page into its template. It reports whether
// the page was skipped as up to date.
func (r *run) buildPage(src, dest string) (bool, error) {
	need, err := NeedsBuild(src, dest, r.force)
	if err != nil {
		return false, err
	}
	if !need {
		return true, nil
	}

	source, err := os.ReadFile(src) // #nosec G304 -- discovered path
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIO, err)
	}

	body, info, err := r.site.transformer.Parse(source, src)
	if err != nil {
		return false, err
	}

	if r.site.cfg.RewriteLinks() {
		if body, err = pipeline.RewritePageLinks(body); err != nil {
			return false, fmt.Errorf("%w: %s: rewriting links: %v", ErrHTMLConversion, src, err)
		}
	}

	doc, err := r.integrator.Integrate(info, src, body)
	if err != nil {
		return false, ioError(err)
	}

	return false, r.write(dest, doc)
}

// buildHTML copies an HTML source, or fills it as a template when the
// project treats sources as templates.
func (r *run) buildHTML(src, dest string) error {
	if !r.site.cfg.TreatSourceAsTemplate() {
		return copyFile(src, dest)
	}

	source, err := os.ReadFile(src) // #nosec G304 -- discovered path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	doc, err := r.integrator.IntegrateSource(string(source))
	if err != nil {
		return ioError(err)
	}
	return r.write(dest, doc)
}

func (r *run) write(dest, doc string) error {
	out, err := r.site.post.Process(doc)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(dest, []byte(out)); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func copyFile(src, dest string) error {
	if err := fileutil.CopyFile(src, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ioError marks asset read failures as I/O errors.
func ioError(err error) error {
	if errors.Is(err, assets.ErrAssetRead) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return err
}
