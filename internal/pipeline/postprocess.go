package pipeline

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
)

const (
	mimeHTML = "text/html"
	mimeCSS  = "text/css"
)

// PostProcessor transforms a finished HTML document before it is written.
type PostProcessor interface {
	Process(doc string) (string, error)
}

// NewPostProcessor returns a Minifier when minify is set, else a no-op.
func NewPostProcessor(minify bool) PostProcessor {
	if minify {
		return NewMinifier()
	}
	return Identity{}
}

// Identity returns documents unchanged.
type Identity struct{}

func (Identity) Process(doc string) (string, error) { return doc, nil }

// Minifier minifies HTML and the CSS embedded in it. Document structure,
// end tags and attribute quotes are kept so output stays valid for strict
// parsers.
type Minifier struct {
	m *minify.M
}

// NewMinifier returns a ready Minifier.
func NewMinifier() *Minifier {
	m := minify.New()
	m.AddFunc(mimeCSS, css.Minify)
	m.Add(mimeHTML, &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return &Minifier{m: m}
}

// Process minifies doc.
func (p *Minifier) Process(doc string) (string, error) {
	out, err := p.m.String(mimeHTML, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLPostprocess, err)
	}
	return out, nil
}

// Compile-time interface checks.
var (
	_ PostProcessor = Identity{}
	_ PostProcessor = (*Minifier)(nil)
)
