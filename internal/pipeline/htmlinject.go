package pipeline

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-raven/internal/assets"
	"github.com/alnah/go-raven/internal/config"
	"github.com/alnah/go-raven/internal/fileutil"
)

// Template markers. Each occurrence is replaced in one left-to-right pass;
// replacement text is never scanned for markers again.
const (
	MarkerBody        = "[/raven_body/]"
	MarkerTitle       = "[/raven_title/]"
	MarkerDescription = "[/raven_description/]"
	MarkerFavicon     = "[/raven_favicon/]"
	MarkerStylesheet  = "[/raven_stylesheet/]"
	MarkerSiteName    = "[/raven_site_name/]"
	MarkerAuthors     = "[/raven_authors/]"
)

// AuthorSeparator joins the author list substituted for MarkerAuthors.
const AuthorSeparator = ", "

// TemplateData holds the values substituted into a template. Title,
// SiteName and Authors are escaped; the other fields are inserted verbatim.
type TemplateData struct {
	Body        string
	Title       string
	Description string
	Favicon     string
	Stylesheet  string
	SiteName    string
	Authors     []string
}

// Substitute replaces every marker in tmpl with its value from d.
func Substitute(tmpl string, d TemplateData) string {
	return strings.NewReplacer(
		MarkerBody, d.Body,
		MarkerTitle, html.EscapeString(d.Title),
		MarkerDescription, d.Description,
		MarkerFavicon, d.Favicon,
		MarkerStylesheet, d.Stylesheet,
		MarkerSiteName, html.EscapeString(d.SiteName),
		MarkerAuthors, html.EscapeString(strings.Join(d.Authors, AuthorSeparator)),
	).Replace(tmpl)
}

// Integrator merges rendered pages into their templates. It is safe for
// concurrent use; fragments are shared through the asset cache.
type Integrator struct {
	cfg      *config.Config
	root     string
	cache    *assets.Cache
	themeCSS string
}

// NewIntegrator returns an Integrator resolving asset paths against root.
// A non-empty themeCSS is appended to every stylesheet substitution.
func NewIntegrator(cfg *config.Config, root string, cache *assets.Cache, themeCSS string) *Integrator {
	return &Integrator{cfg: cfg, root: root, cache: cache, themeCSS: themeCSS}
}

// Integrate renders body into the template selected by info. A missing
// template fails with ErrMissingTemplate; a missing stylesheet fails with
// assets.ErrAssetRead.
func (i *Integrator) Integrate(info *PageInfo, sourcePath, body string) (string, error) {
	templatePath := i.resolve(info.Template, i.cfg.Defaults.Template)
	if !fileutil.FileExists(templatePath) {
		return "", fmt.Errorf("%w: %s: expected template %s", ErrMissingTemplate, sourcePath, templatePath)
	}
	tmpl, err := os.ReadFile(templatePath) // #nosec G304 -- project template
	if err != nil {
		return "", fmt.Errorf("%w: %w", assets.ErrAssetRead, err)
	}

	d, err := i.fragments(info.Favicon, info.Style)
	if err != nil {
		return "", err
	}

	meta := info.Meta
	if meta == nil {
		meta = i.cfg.Defaults.Meta
	}
	d.Body = body
	d.Title = info.Title
	d.Description = info.Description
	if meta != nil {
		d.SiteName = meta.SiteName
		d.Authors = meta.Authors
		d.Title += i.cfg.TitleSuffix(meta.SiteName)
	}

	return Substitute(string(tmpl), d), nil
}

// IntegrateSource treats an HTML source file as its own template and fills
// it with the project defaults. There is no body or page metadata.
func (i *Integrator) IntegrateSource(source string) (string, error) {
	d, err := i.fragments("", "")
	if err != nil {
		return "", err
	}
	if meta := i.cfg.Defaults.Meta; meta != nil {
		d.SiteName = meta.SiteName
		d.Authors = meta.Authors
	}
	return Substitute(source, d), nil
}

func (i *Integrator) fragments(favicon, style string) (TemplateData, error) {
	var d TemplateData
	var err error

	d.Favicon, err = i.cache.Favicon(i.resolve(favicon, i.cfg.Defaults.Favicon))
	if err != nil {
		return d, err
	}

	d.Stylesheet, err = i.cache.Stylesheet(i.resolve(style, i.cfg.Defaults.Stylesheet))
	if err != nil {
		return d, err
	}
	if i.themeCSS != "" {
		d.Stylesheet += "<style>" + sanitizeCSS(i.themeCSS) + "</style>"
	}
	return d, nil
}

// resolve picks the page override, else the project default, relative to
// the project root.
func (i *Integrator) resolve(override, fallback string) string {
	p := override
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(i.root, p)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
