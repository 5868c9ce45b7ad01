package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-raven/internal/assets"
)

const xmlExt = ".xml"

// Highlighter renders fenced code with a fixed theme. Custom lexers loaded
// from the project take precedence over chroma's builtin ones.
type Highlighter struct {
	custom *chroma.LexerRegistry
	style  *chroma.Style
}

// NewHighlighter returns a Highlighter for the given custom lexers and style.
// A nil registry means builtin lexers only.
func NewHighlighter(custom *chroma.LexerRegistry, style *chroma.Style) *Highlighter {
	if custom == nil {
		custom = chroma.NewLexerRegistry()
	}
	return &Highlighter{custom: custom, style: style}
}

// Style returns the theme code is highlighted with.
func (h *Highlighter) Style() *chroma.Style {
	return h.style
}

// Lexer finds the lexer for a fence language by name, alias or file
// extension, case-insensitively. It returns nil when none matches.
func (h *Highlighter) Lexer(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}
	if l := h.custom.Get(lang); l != nil {
		return l
	}
	return lexers.Get(lang)
}

// Highlight renders code with inline styles. The markup is compatible with
// syntect's highlighted_html_for_string: one <pre> carrying the theme
// background, and one span per run of equally styled text within a line.
func (h *Highlighter) Highlight(lexer chroma.Lexer, code string) (string, error) {
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntaxHighlight, err)
	}

	var b strings.Builder
	bg := h.style.Get(chroma.Background).Background
	b.WriteString(`<pre style="background-color:`)
	b.WriteString(bg.String())
	b.WriteString(";\">\n")

	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		h.writeLine(&b, line, bg)
	}

	b.WriteString("</pre>\n")
	return b.String(), nil
}

type run struct {
	entry chroma.StyleEntry
	text  strings.Builder
}

func (h *Highlighter) writeLine(b *strings.Builder, line []chroma.Token, bg chroma.Colour) {
	var runs []*run
	for _, tok := range line {
		if tok.Value == "" {
			continue
		}
		var entry chroma.StyleEntry
		switch {
		case strings.TrimSpace(tok.Value) != "":
			entry = h.style.Get(tok.Type)
		case len(runs) > 0:
			entry = runs[len(runs)-1].entry
		default:
			entry = h.style.Get(chroma.Text)
		}

		if n := len(runs); n > 0 && sameLook(runs[n-1].entry, entry) {
			runs[n-1].text.WriteString(tok.Value)
			continue
		}
		r := &run{entry: entry}
		r.text.WriteString(tok.Value)
		runs = append(runs, r)
	}

	for _, r := range runs {
		b.WriteString(`<span style="`)
		b.WriteString(inlineCSS(r.entry, bg))
		b.WriteString(`">`)
		b.Write(util.EscapeHTML([]byte(r.text.String())))
		b.WriteString("</span>")
	}
}

func sameLook(a, b chroma.StyleEntry) bool {
	return a.Colour == b.Colour && a.Background == b.Background &&
		a.Bold == b.Bold && a.Italic == b.Italic && a.Underline == b.Underline
}

func inlineCSS(e chroma.StyleEntry, bg chroma.Colour) string {
	var sb strings.Builder
	if e.Underline == chroma.Yes {
		sb.WriteString("text-decoration:underline;")
	}
	if e.Bold == chroma.Yes {
		sb.WriteString("font-weight:bold;")
	}
	if e.Italic == chroma.Yes {
		sb.WriteString("font-style:italic;")
	}
	if e.Background.IsSet() && e.Background != bg {
		sb.WriteString("background-color:" + e.Background.String() + ";")
	}
	if e.Colour.IsSet() {
		sb.WriteString("color:" + e.Colour.String() + ";")
	}
	return sb.String()
}

// HighlightClasses renders code with CSS classes instead of inline styles.
// ThemeCSS returns the matching stylesheet.
func (h *Highlighter) HighlightClasses(lexer chroma.Lexer, code string) (string, error) {
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntaxHighlight, err)
	}

	var sb strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).Format(&sb, h.style, it); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntaxHighlight, err)
	}
	return sb.String(), nil
}

// ThemeCSS returns the class-based stylesheet for the theme, used when code
// is highlighted with CSS classes instead of inline styles.
func (h *Highlighter) ThemeCSS() (string, error) {
	var sb strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&sb, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntaxHighlight, err)
	}
	return sb.String(), nil
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadSyntaxes reads every chroma XML lexer definition in dir. A missing
// directory yields an empty registry.
func LoadSyntaxes(dir string) (*chroma.LexerRegistry, error) {
	reg := chroma.NewLexerRegistry()
	if dir == "" {
		return reg, nil
	}

	fsys := os.DirFS(dir)
	names, err := xmlFiles(fsys)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return reg, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadSyntax, dir, err)
	}

	for _, name := range names {
		lexer, err := chroma.NewXMLLexer(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadSyntax, path.Join(dir, name), err)
		}
		reg.Register(lexer)
	}
	return reg, nil
}

// LoadThemes returns chroma's builtin styles, the embedded base16 themes and
// every chroma XML style in customDir, keyed by name. Later sources override
// earlier ones. A missing customDir is not an error.
func LoadThemes(customDir string) (map[string]*chroma.Style, error) {
	themes := make(map[string]*chroma.Style, len(styles.Registry)+8)
	for name, style := range styles.Registry {
		themes[name] = style
	}

	if err := addXMLStyles(themes, assets.Themes()); err != nil {
		return nil, fmt.Errorf("%w: builtin: %v", ErrLoadTheme, err)
	}

	if customDir == "" {
		return themes, nil
	}
	err := addXMLStyles(themes, os.DirFS(customDir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadTheme, customDir, err)
	}
	return themes, nil
}

// SelectTheme returns the named theme or ErrMissingTheme.
func SelectTheme(themes map[string]*chroma.Style, name string) (*chroma.Style, error) {
	style, ok := themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingTheme, name)
	}
	return style, nil
}

// ThemeNames returns the sorted theme names.
func ThemeNames(themes map[string]*chroma.Style) []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addXMLStyles(dst map[string]*chroma.Style, fsys fs.FS) error {
	names, err := xmlFiles(fsys)
	if err != nil {
		return err
	}
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			return err
		}
		style, err := chroma.NewXMLStyle(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		key := style.Name
		if key == "" {
			key = strings.TrimSuffix(name, xmlExt)
		}
		dst[key] = style
	}
	return nil
}

func xmlFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(path.Ext(e.Name()), xmlExt) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
