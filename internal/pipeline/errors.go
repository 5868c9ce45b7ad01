package pipeline

import "errors"

// Sentinel errors for page processing. Startup errors (themes, syntaxes)
// abort a run; the others fail a single page.
var (
	ErrMissingPageInfo = errors.New("missing pageinfo block")
	ErrParsePageInfo   = errors.New("failed to parse pageinfo")
	ErrSyntaxHighlight = errors.New("syntax highlighting failed")
	ErrHTMLConversion  = errors.New("HTML conversion failed")
	ErrMissingTemplate = errors.New("template not found")
	ErrHTMLPostprocess = errors.New("HTML post-processing failed")

	ErrMissingTheme = errors.New("syntax theme not found")
	ErrLoadSyntax   = errors.New("failed to load syntax definitions")
	ErrLoadTheme    = errors.New("failed to load syntax themes")
)
