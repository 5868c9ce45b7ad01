package main

import (
	"errors"

	raven "github.com/alnah/go-raven"
	"github.com/alnah/go-raven/internal/hints"
	"github.com/alnah/go-raven/internal/pipeline"
)

// hintedError appends a hint to an error message and keeps the error
// chain intact for exitCodeFor.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the generic hint for err, unless it already has one.
func withHint(err error) error {
	var h *hintedError
	if err == nil || errors.As(err, &h) {
		return err
	}

	var hint string
	switch {
	case errors.Is(err, raven.ErrConfigNotFound):
		hint = hints.ForConfigNotFound()
	case errors.Is(err, raven.ErrConfigParse):
		hint = hints.ForConfigParse()
	case errors.Is(err, raven.ErrMissingTheme):
		hint = hints.ForThemeNotFound(nil)
	case errors.Is(err, raven.ErrNoSourceFiles):
		hint = hints.ForNoSourceFiles()
	case errors.Is(err, raven.ErrUnsafeClean):
		hint = hints.ForUnsafeClean()
	}
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// withThemeHint suggests themes whose names resemble the configured one.
func withThemeHint(err error, dir string, cfg *raven.Config) error {
	if !errors.Is(err, raven.ErrMissingTheme) {
		return err
	}
	themesDir := ""
	if cfg.CustomSyntaxThemes != "" {
		themesDir = inProject(dir, cfg.CustomSyntaxThemes)
	}
	themes, loadErr := pipeline.LoadThemes(themesDir)
	if loadErr != nil {
		return err
	}
	similar := hints.SimilarNames(cfg.SyntaxTheme, pipeline.ThemeNames(themes), 5)
	return &hintedError{err: err, hint: hints.ForThemeNotFound(similar)}
}
