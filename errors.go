package raven

import (
	"errors"

	"github.com/alnah/go-raven/internal/assets"
	"github.com/alnah/go-raven/internal/config"
	"github.com/alnah/go-raven/internal/pipeline"
)

// Sentinel errors for build operations.
var (
	ErrIO            = errors.New("I/O error")
	ErrNoSourceFiles = errors.New("no source files found")
	ErrUnitPanic     = errors.New("page build panicked")
	ErrDestCollision = errors.New("sources share an output path")
)

// Startup errors. These abort a run before any page is built.
var (
	ErrMissingTheme = pipeline.ErrMissingTheme
	ErrLoadSyntax   = pipeline.ErrLoadSyntax
	ErrLoadTheme    = pipeline.ErrLoadTheme
)

// Page errors. These fail a single page and are collected in Report.Failed.
var (
	ErrMissingPageInfo = pipeline.ErrMissingPageInfo
	ErrParsePageInfo   = pipeline.ErrParsePageInfo
	ErrSyntaxHighlight = pipeline.ErrSyntaxHighlight
	ErrHTMLConversion  = pipeline.ErrHTMLConversion
	ErrMissingTemplate = pipeline.ErrMissingTemplate
	ErrHTMLPostprocess = pipeline.ErrHTMLPostprocess
	ErrAssetRead       = assets.ErrAssetRead
)

// Configuration errors.
var (
	ErrConfigNotFound = config.ErrConfigNotFound
	ErrConfigParse    = config.ErrConfigParse
	ErrInvalidConfig  = config.ErrInvalidConfig
)
